// Package metrics defines the build/serve instrumentation surface.
package metrics

import "time"

// Recorder receives build and preview-server measurements.
// Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome string)
	AddPagesRendered(n int)
	AddPagesSkipped(n int)
	SetLiveReloadClients(n int)
}

// Nop is a Recorder that discards everything. Used when metrics are disabled.
type Nop struct{}

func (Nop) ObserveStageDuration(string, time.Duration) {}
func (Nop) ObserveBuildDuration(time.Duration)         {}
func (Nop) IncBuildOutcome(string)                     {}
func (Nop) AddPagesRendered(int)                       {}
func (Nop) AddPagesSkipped(int)                        {}
func (Nop) SetLiveReloadClients(int)                   {}
