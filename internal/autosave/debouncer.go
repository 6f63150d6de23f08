// Package autosave runs a save function after a quiet period following the
// last change.
package autosave

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultDelay = 500 * time.Millisecond

// SaveFunc persists the latest state. It should read the state when called,
// not when the change was scheduled.
type SaveFunc func(ctx context.Context) error

// Debouncer coalesces bursts of Trigger calls into a single save. A newer
// trigger cancels the pending one. Saves never overlap.
type Debouncer struct {
	delay   time.Duration
	save    SaveFunc
	onError func(error)
	log     *zap.Logger

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
	stopped bool

	saveMu sync.Mutex
}

func NewDebouncer(delay time.Duration, save SaveFunc, onError func(error), log *zap.Logger) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Debouncer{
		delay:   delay,
		save:    save,
		onError: onError,
		log:     log,
	}
}

// Trigger (re)schedules a save delay from now.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	if err := d.run(context.Background()); err != nil {
		d.log.Debug("debounced save failed", zap.Error(err))
		if d.onError != nil {
			d.onError(err)
		}
	}
}

// Flush cancels any pending timer and saves immediately.
func (d *Debouncer) Flush(ctx context.Context) error {
	d.mu.Lock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = false
	d.mu.Unlock()

	return d.run(ctx)
}

// Stop cancels the pending save and ignores later triggers. If flush is
// true a final save runs whether or not one was pending.
func (d *Debouncer) Stop(ctx context.Context, flush bool) error {
	d.mu.Lock()
	d.gen++
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	if flush {
		return d.run(ctx)
	}
	return nil
}

func (d *Debouncer) run(ctx context.Context) error {
	d.saveMu.Lock()
	defer d.saveMu.Unlock()
	return d.save(ctx)
}
