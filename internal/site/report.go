package site

import "time"

// Report summarizes one build.
type Report struct {
	BuildID string

	Pages         int
	Assets        int
	DraftsSkipped int
	FutureSkipped int
	CacheSkipped  int // single pages skipped via the incremental cache

	StartedAt      time.Time
	Duration       time.Duration
	StageDurations map[string]time.Duration
}
