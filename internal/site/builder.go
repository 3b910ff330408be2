// Package site assembles a complete static site: content discovery, Markdown
// rendering, template execution, feeds, and asset copying, run as a sequence
// of named stages.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-press/inkwell/internal/buildstate"
	"github.com/inkwell-press/inkwell/internal/config"
	"github.com/inkwell-press/inkwell/internal/content"
	"github.com/inkwell-press/inkwell/internal/gitinfo"
	"github.com/inkwell-press/inkwell/internal/logfields"
	"github.com/inkwell-press/inkwell/internal/markdown"
	"github.com/inkwell-press/inkwell/internal/metrics"
	"github.com/inkwell-press/inkwell/internal/render"
)

// Options are per-invocation build switches layered over the config.
type Options struct {
	Drafts     bool
	Future     bool
	LiveReload bool // inject the livereload script into rendered pages
}

// Builder runs builds for one configured site.
type Builder struct {
	cfg      *config.Config
	opts     Options
	renderer *markdown.Renderer
	engine   *render.Engine
	store    *buildstate.Store  // nil when incremental builds are disabled
	git      *gitinfo.Resolver  // nil when git info is disabled or unavailable
	recorder metrics.Recorder
}

// NewBuilder wires a builder from configuration. The build-state store and
// git resolver are optional; pass nil to disable either.
func NewBuilder(cfg *config.Config, opts Options, store *buildstate.Store, recorder metrics.Recorder) (*Builder, error) {
	engine, err := render.NewEngine(cfg.Dirs.Layouts, &cfg.Site)
	if err != nil {
		return nil, fmt.Errorf("load layouts: %w", err)
	}

	if recorder == nil {
		recorder = metrics.Nop{}
	}

	b := &Builder{
		cfg:      cfg,
		opts:     opts,
		renderer: markdown.NewRenderer(),
		engine:   engine,
		store:    store,
		recorder: recorder,
	}

	if cfg.Build.GitInfo {
		resolver, err := gitinfo.NewResolver(cfg.Dirs.Content)
		if err != nil {
			slog.Debug("git info unavailable", logfields.Error(err))
		} else {
			b.git = resolver
		}
	}

	return b, nil
}

// stage is one named step of the build pipeline.
type stage struct {
	name string
	fn   func(context.Context, *buildState) error
}

// buildState carries intermediate results between stages.
type buildState struct {
	files      []content.File
	pages      []*content.Page // filtered, sorted newest first
	assets     []content.File
	taxonomies map[string]*content.Taxonomy
	configHash string
	fullRender bool // config changed or no cache: render everything
	report     *Report
}

// Build runs all stages and returns the build report.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	started := time.Now()
	state := &buildState{
		report: &Report{
			BuildID:        uuid.NewString(),
			StartedAt:      started,
			StageDurations: map[string]time.Duration{},
		},
	}

	slog.Info("Starting site build",
		logfields.BuildID(state.report.BuildID),
		slog.String("content", b.cfg.Dirs.Content),
		slog.String("output", b.cfg.Dirs.Output))

	stages := []stage{
		{"prepare_output", b.stagePrepareOutput},
		{"discover", b.stageDiscover},
		{"load_pages", b.stageLoadPages},
		{"assemble", b.stageAssemble},
		{"render_pages", b.stageRenderPages},
		{"render_indexes", b.stageRenderIndexes},
		{"feeds", b.stageFeeds},
		{"copy_static", b.stageCopyStatic},
		{"persist_state", b.stagePersistState},
	}

	for _, st := range stages {
		select {
		case <-ctx.Done():
			b.recorder.IncBuildOutcome("canceled")
			return state.report, fmt.Errorf("build canceled before stage %s: %w", st.name, ctx.Err())
		default:
		}

		t0 := time.Now()
		err := st.fn(ctx, state)
		dur := time.Since(t0)
		state.report.StageDurations[st.name] = dur
		b.recorder.ObserveStageDuration(st.name, dur)

		slog.Debug("Stage complete", logfields.Stage(st.name), logfields.DurationMS(float64(dur.Milliseconds())))

		if err != nil {
			b.recorder.IncBuildOutcome("failure")
			return state.report, fmt.Errorf("stage %s: %w", st.name, err)
		}
	}

	state.report.Duration = time.Since(started)
	b.recorder.ObserveBuildDuration(state.report.Duration)
	b.recorder.IncBuildOutcome("success")
	b.recorder.AddPagesRendered(state.report.Pages - state.report.CacheSkipped)
	b.recorder.AddPagesSkipped(state.report.CacheSkipped)

	slog.Info("Site build finished",
		logfields.BuildID(state.report.BuildID),
		logfields.Count(state.report.Pages),
		slog.Int("assets", state.report.Assets),
		slog.Int("cache_skipped", state.report.CacheSkipped),
		slog.Duration("duration", state.report.Duration))

	return state.report, nil
}
