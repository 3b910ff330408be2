package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-press/inkwell/internal/config"
	"github.com/inkwell-press/inkwell/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Override the configured output directory"`
	Drafts bool   `short:"D" help:"Include pages marked draft"`
	Future bool   `short:"F" help:"Include pages dated in the future"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.Output != "" {
		cfg.Dirs.Output = b.Output
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	builder, err := site.NewBuilder(cfg, site.Options{
		Drafts: b.Drafts || cfg.Build.Drafts,
		Future: b.Future || cfg.Build.Future,
	}, store, nil)
	if err != nil {
		return err
	}

	report, err := builder.Build(context.Background())
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	fmt.Printf("Built %d pages and %d assets in %s\n",
		report.Pages, report.Assets, report.Duration.Round(time.Millisecond))
	if report.DraftsSkipped > 0 {
		fmt.Printf("  %d drafts skipped (use --drafts to include)\n", report.DraftsSkipped)
	}
	if report.FutureSkipped > 0 {
		fmt.Printf("  %d future-dated pages skipped (use --future to include)\n", report.FutureSkipped)
	}
	if report.CacheSkipped > 0 {
		fmt.Printf("  %d unchanged pages reused from cache\n", report.CacheSkipped)
	}
	return nil
}
