package vanity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
)

// MatchHandler is called by the collector after each record is written.
// count is the running number of matches.
type MatchHandler func(count uint64, rec MatchRecord)

// Collector is the single consumer of the queue. It filters candidates and
// appends matches to the sink; it is the only writer to the sink.
type Collector struct {
	filter     string
	sink       io.Writer
	queue      *Queue
	maxMatches uint64
	onMatch    MatchHandler

	candidates atomic.Uint64
	matches    atomic.Uint64
}

// NewCollector creates a collector filtering on filter and writing to sink.
func NewCollector(filter string, sink io.Writer, queue *Queue) *Collector {
	return &Collector{
		filter: filter,
		sink:   sink,
		queue:  queue,
	}
}

// WithMaxMatches stops Run after n matches. Zero means no limit.
func (c *Collector) WithMaxMatches(n uint64) *Collector {
	c.maxMatches = n
	return c
}

// WithMatchHandler sets the callback invoked after every written match.
func (c *Collector) WithMatchHandler(fn MatchHandler) *Collector {
	c.onMatch = fn
	return c
}

// Filter returns the configured prefix.
func (c *Collector) Filter() string {
	return c.filter
}

// Candidates returns the number of keypairs examined so far.
func (c *Collector) Candidates() uint64 {
	return c.candidates.Load()
}

// Matches returns the number of records written so far.
func (c *Collector) Matches() uint64 {
	return c.matches.Load()
}

// Run receives and processes keypairs until ctx is cancelled, the queue is
// closed and drained, or the match limit is reached; all of these return
// nil. A sink write failure is returned as an error.
//
// Cancellation stops Run before the next candidate even if the queue still
// holds a backlog; unprocessed keypairs stay queued.
func (c *Collector) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		if c.maxMatches > 0 && c.matches.Load() >= c.maxMatches {
			return nil
		}

		kp, err := c.queue.Receive(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			c.queue.unreceive(kp)
			return nil
		}

		if _, err := c.Process(kp); err != nil {
			return err
		}
	}
}

// Accepts encodes the public key of kp and evaluates the filter on it.
func (c *Collector) Accepts(kp Keypair) (string, bool) {
	encoded := kp.EncodedPublicKey()
	return encoded, Matches(encoded, c.filter)
}

// Process handles a single candidate and reports whether it was written.
// The record is written with one Write call so the sink never holds a
// partial line between candidates.
func (c *Collector) Process(kp Keypair) (bool, error) {
	c.candidates.Add(1)

	encoded, ok := c.Accepts(kp)
	if !ok {
		return false, nil
	}

	rec := MatchRecord{PrivateKey: kp.EncodedPrivateKey(), PublicKey: encoded}
	if _, err := io.WriteString(c.sink, rec.Line()); err != nil {
		return false, fmt.Errorf("failed to write match record: %w", err)
	}

	count := c.matches.Add(1)
	if c.onMatch != nil {
		c.onMatch(count, rec)
	}
	return true, nil
}
