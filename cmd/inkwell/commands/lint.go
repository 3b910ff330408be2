package commands

import (
	"fmt"
	"os"

	"github.com/inkwell-press/inkwell/internal/config"
	"github.com/inkwell-press/inkwell/internal/lint"
)

// LintCmd implements the 'lint' command.
type LintCmd struct {
	Format string `help:"Output format" enum:"text,json" default:"text"`
	Quiet  bool   `short:"q" help:"Only report errors"`
}

func (l *LintCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	linter := lint.NewLinter(&lint.Config{
		Quiet:  l.Quiet,
		Format: l.Format,
	}, cfg.Dirs.Content, cfg.Dirs.Static)

	result, err := linter.Lint()
	if err != nil {
		return fmt.Errorf("lint: %w", err)
	}

	if err := lint.NewFormatter(l.Format).Format(os.Stdout, result, cfg.Dirs.Content); err != nil {
		return err
	}
	if result.HasErrors() {
		return fmt.Errorf("%d lint error(s)", result.ErrorCount())
	}
	return nil
}
