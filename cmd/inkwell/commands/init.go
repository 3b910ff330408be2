package commands

import (
	"fmt"

	"github.com/inkwell-press/inkwell/internal/config"
	"github.com/inkwell-press/inkwell/internal/scaffold"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Dir        string `arg:"" optional:"" default:"." help:"Directory to initialize"`
	Name       string `help:"Site title (defaults to the directory name)"`
	Force      bool   `help:"Overwrite existing files"`
	ConfigOnly bool   `name:"config-only" help:"Write only inkwell.yaml, no content skeleton"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if i.ConfigOnly {
		if err := config.Init(root.Config, i.Force); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", root.Config)
		return nil
	}

	if err := scaffold.InitSite(i.Dir, i.Name, i.Force); err != nil {
		return err
	}
	fmt.Printf("Site initialized in %s\n", i.Dir)
	fmt.Println("Next: inkwell serve")
	return nil
}
