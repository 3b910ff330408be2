package metrics

import (
	"errors"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry          *prom.Registry
	stageDuration     *prom.HistogramVec
	buildDuration     prom.Histogram
	buildOutcome      *prom.CounterVec
	pagesRendered     prom.Counter
	pagesSkipped      prom.Counter
	livereloadClients prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics. A second
// recorder on the same registry reuses the already-registered collectors.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = registerOn(reg, prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "inkwell",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"}))
	pr.buildDuration = registerOn[prom.Histogram](reg, prom.NewHistogram(prom.HistogramOpts{
		Namespace: "inkwell",
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	}))
	pr.buildOutcome = registerOn(reg, prom.NewCounterVec(prom.CounterOpts{
		Namespace: "inkwell",
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"}))
	pr.pagesRendered = registerOn[prom.Counter](reg, prom.NewCounter(prom.CounterOpts{
		Namespace: "inkwell",
		Name:      "pages_rendered_total",
		Help:      "Pages rendered across all builds",
	}))
	pr.pagesSkipped = registerOn[prom.Counter](reg, prom.NewCounter(prom.CounterOpts{
		Namespace: "inkwell",
		Name:      "pages_skipped_total",
		Help:      "Pages skipped by the incremental cache",
	}))
	pr.livereloadClients = registerOn[prom.Gauge](reg, prom.NewGauge(prom.GaugeOpts{
		Namespace: "inkwell",
		Name:      "livereload_clients",
		Help:      "Currently connected livereload clients",
	}))
	return pr
}

// registerOn registers c, returning the existing collector when one with the
// same descriptor is already registered.
func registerOn[C prom.Collector](reg *prom.Registry, c C) C {
	if err := reg.Register(c); err != nil {
		var are prom.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(C)
		}
		panic(err)
	}
	return c
}

// Registry returns the registry the recorder's collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) AddPagesRendered(n int) {
	if p == nil || p.pagesRendered == nil {
		return
	}
	p.pagesRendered.Add(float64(n))
}

func (p *PrometheusRecorder) AddPagesSkipped(n int) {
	if p == nil || p.pagesSkipped == nil {
		return
	}
	p.pagesSkipped.Add(float64(n))
}

func (p *PrometheusRecorder) SetLiveReloadClients(n int) {
	if p == nil || p.livereloadClients == nil {
		return
	}
	p.livereloadClients.Set(float64(n))
}
