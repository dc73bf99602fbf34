// Package meter samples a monotonically increasing counter at a fixed
// interval and hands the deltas to reporters (a terminal progress bar or a
// structured log line).
package meter

import (
	"context"
	"time"
)

// Sample is one observation of the counter.
type Sample struct {
	Total   uint64        // counter value at the tick
	Delta   uint64        // increase since the previous tick
	Elapsed time.Duration // time since the previous tick
}

// Rate returns Delta per second.
func (s Sample) Rate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Delta) / s.Elapsed.Seconds()
}

// Reporter receives samples. Report is called from the meter goroutine only.
type Reporter interface {
	Report(s Sample)
}

// Meter polls a counter and publishes samples.
type Meter struct {
	counter   func() uint64
	interval  time.Duration
	reporters []Reporter
}

// New creates a meter reading counter every interval.
func New(counter func() uint64, interval time.Duration, reporters ...Reporter) *Meter {
	if interval <= 0 {
		interval = time.Second
	}
	return &Meter{
		counter:   counter,
		interval:  interval,
		reporters: reporters,
	}
}

// Run samples until ctx is cancelled.
func (m *Meter) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	last := m.counter()
	lastAt := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			cur := m.counter()
			s := Sample{Total: cur, Delta: cur - last, Elapsed: now.Sub(lastAt)}
			last, lastAt = cur, now
			for _, r := range m.reporters {
				r.Report(s)
			}
		}
	}
}

// Start runs the meter on its own goroutine. The returned function stops
// it and waits for the goroutine to exit.
func (m *Meter) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}
