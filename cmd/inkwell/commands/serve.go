package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/inkwell-press/inkwell/internal/config"
	"github.com/inkwell-press/inkwell/internal/server"
	"github.com/inkwell-press/inkwell/internal/site"
)

// ServeCmd implements the 'serve' command: build, watch, serve, live reload.
type ServeCmd struct {
	Addr         string `short:"a" help:"Override the configured listen address"`
	Drafts       bool   `short:"D" help:"Include pages marked draft"`
	Future       bool   `short:"F" help:"Include pages dated in the future"`
	RebuildEvery string `name:"rebuild-every" help:"Periodic full rebuild interval (e.g. 10m), overrides server.rebuild_every"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}
	if s.RebuildEvery != "" {
		cfg.Server.RebuildEvery = s.RebuildEvery
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}
	recorder := newRecorder(cfg)

	builder, err := site.NewBuilder(cfg, site.Options{
		Drafts:     s.Drafts || cfg.Build.Drafts,
		Future:     s.Future || cfg.Build.Future,
		LiveReload: true,
	}, store, recorder)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return server.New(cfg, builder, recorder).Run(ctx)
}
