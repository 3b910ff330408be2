package commands

import (
	"fmt"
	"os"

	"github.com/inkwell-press/inkwell/internal/config"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct {
	Cache bool `help:"Also remove the incremental build cache"`
}

func (c *CleanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := os.RemoveAll(cfg.Dirs.Output); err != nil {
		return fmt.Errorf("remove output: %w", err)
	}
	fmt.Printf("Removed %s\n", cfg.Dirs.Output)

	if c.Cache && cfg.Build.CachePath != "" {
		if err := os.Remove(cfg.Build.CachePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove cache: %w", err)
		}
		fmt.Printf("Removed %s\n", cfg.Build.CachePath)
	}
	return nil
}
