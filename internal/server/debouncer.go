package server

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DebouncerConfig tunes how change bursts are coalesced.
type DebouncerConfig struct {
	// QuietWindow is how long the source tree must stay quiet before a
	// rebuild fires.
	QuietWindow time.Duration

	// MaxDelay bounds how long a continuous stream of changes can postpone
	// the rebuild.
	MaxDelay time.Duration
}

// ErrBadDebounce reports an invalid debouncer configuration.
var ErrBadDebounce = errors.New("invalid debounce configuration")

// Trigger describes one coalesced rebuild request.
type Trigger struct {
	FiredAt      time.Time
	FirstRequest time.Time
	LastRequest  time.Time
	RequestCount int
	LastPath     string // last changed path in the burst, for logging
	Cause        string // "quiet" or "max_delay"
}

// Debouncer coalesces bursts of file-change notifications into single
// rebuild triggers.
//
// Behavior:
//   - quiet window debounce
//   - max delay (changes cannot postpone a rebuild indefinitely)
//   - while a rebuild is in flight, at most one follow-up trigger is queued
//
// Triggers are delivered on C; the channel holds at most one pending trigger,
// so a slow consumer (a running build) coalesces everything that arrives in
// the meantime into a single follow-up.
type Debouncer struct {
	cfg DebouncerConfig

	requests chan string
	out      chan Trigger

	mu             sync.Mutex
	pending        bool
	firstRequestAt time.Time
	lastRequestAt  time.Time
	lastPath       string
	requestCount   int
}

// NewDebouncer validates the configuration and constructs a debouncer.
func NewDebouncer(cfg DebouncerConfig) (*Debouncer, error) {
	if cfg.QuietWindow <= 0 {
		return nil, errors.Join(ErrBadDebounce, errors.New("quiet window must be > 0"))
	}
	if cfg.MaxDelay <= 0 {
		return nil, errors.Join(ErrBadDebounce, errors.New("max delay must be > 0"))
	}
	return &Debouncer{
		cfg:      cfg,
		requests: make(chan string, 64),
		out:      make(chan Trigger, 1),
	}, nil
}

// Notify records one source change. It never blocks; when the request buffer
// is full the change is already covered by a pending trigger.
func (d *Debouncer) Notify(path string) {
	select {
	case d.requests <- path:
	default:
	}
}

// C delivers coalesced rebuild triggers.
func (d *Debouncer) C() <-chan Trigger {
	return d.out
}

// Run drives the debounce loop until ctx is canceled. It is meant to run as
// a single goroutine.
func (d *Debouncer) Run(ctx context.Context) {
	quietTimer := newStoppedTimer()
	maxTimer := newStoppedTimer()

	var (
		quietC <-chan time.Time
		maxC   <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return

		case path := <-d.requests:
			first := d.onRequest(path)

			resetTimer(quietTimer, d.cfg.QuietWindow)
			quietC = quietTimer.C

			if first {
				resetTimer(maxTimer, d.cfg.MaxDelay)
				maxC = maxTimer.C
			}

		case <-quietC:
			d.emit("quiet")
			quietC = nil
			maxC = nil

		case <-maxC:
			d.emit("max_delay")
			quietC = nil
			maxC = nil
		}
	}
}

// onRequest records a request and reports whether it opened a new burst.
func (d *Debouncer) onRequest(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	first := !d.pending
	if first {
		d.pending = true
		d.firstRequestAt = now
		d.requestCount = 0
	}
	d.lastRequestAt = now
	d.lastPath = path
	d.requestCount++
	return first
}

func (d *Debouncer) emit(cause string) {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	trig := Trigger{
		FiredAt:      time.Now(),
		FirstRequest: d.firstRequestAt,
		LastRequest:  d.lastRequestAt,
		RequestCount: d.requestCount,
		LastPath:     d.lastPath,
		Cause:        cause,
	}
	d.pending = false
	d.mu.Unlock()

	select {
	case d.out <- trig:
	default:
		// A trigger is already queued behind a running build; this burst is
		// folded into it.
	}
}

func newStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	return t
}

func resetTimer(t *time.Timer, after time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(after)
}
