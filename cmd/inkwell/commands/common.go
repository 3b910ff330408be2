// Package commands contains the CLI subcommands.
package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/inkwell-press/inkwell/internal/buildstate"
	"github.com/inkwell-press/inkwell/internal/config"
	"github.com/inkwell-press/inkwell/internal/logfields"
	"github.com/inkwell-press/inkwell/internal/metrics"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"inkwell.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Build the site into the output directory"`
	Serve ServeCmd `cmd:"" help:"Serve the site locally with watch and live reload"`
	New   NewCmd   `cmd:"" help:"Create a new draft content file"`
	Init  InitCmd  `cmd:"" help:"Initialize a new site skeleton"`
	Lint  LintCmd  `cmd:"" help:"Check content files for problems"`
	Clean CleanCmd `cmd:"" help:"Remove the output directory and build cache"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// openStore opens the build-state store when incremental builds are
// configured. A nil store disables caching.
func openStore(cfg *config.Config) *buildstate.Store {
	if cfg.Build.CachePath == "" {
		return nil
	}
	store, err := buildstate.Open(cfg.Build.CachePath)
	if err != nil {
		slog.Warn("Build cache unavailable, rendering everything", logfields.Error(err))
		return nil
	}
	return store
}

// newRecorder returns a Prometheus recorder when metrics are enabled.
func newRecorder(cfg *config.Config) metrics.Recorder {
	if !cfg.Server.Metrics {
		return metrics.Nop{}
	}
	return metrics.NewPrometheusRecorder(nil)
}
