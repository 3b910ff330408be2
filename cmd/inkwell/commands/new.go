package commands

import (
	"fmt"

	"github.com/inkwell-press/inkwell/internal/config"
	"github.com/inkwell-press/inkwell/internal/scaffold"
)

// NewCmd implements the 'new' command.
type NewCmd struct {
	Target string `arg:"" help:"Post title (\"My First Post\") or content path (posts/my-first-post.md)"`
}

func (n *NewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	path, err := scaffold.NewPost(cfg.Dirs.Content, n.Target)
	if err != nil {
		return err
	}
	fmt.Printf("Created %s\n", path)
	return nil
}
