package main

import (
	"github.com/alecthomas/kong"

	"github.com/inkwell-press/inkwell/cmd/inkwell/commands"
	"github.com/inkwell-press/inkwell/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("inkwell"),
		kong.Description("Static blog publisher: Markdown in, themed HTML out."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
