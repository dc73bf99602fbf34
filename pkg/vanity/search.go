package vanity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// SearchConfig configures a vanity search.
type SearchConfig struct {
	// Filter is the literal prefix the encoded public key must start with
	Filter string

	// Threads is the number of generator workers (0 runs an idle collector)
	Threads int

	// Queue configures the worker-to-collector queue
	Queue QueueConfig

	// MaxMatches stops the search after this many records (0 = never)
	MaxMatches uint64

	// Entropy is shared by all workers; defaults to SystemEntropy()
	Entropy EntropySource
}

// DefaultSearchConfig returns a configuration with one worker per CPU, an
// unbounded queue and the system entropy source.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Threads: runtime.NumCPU(),
		Queue:   DefaultQueueConfig(),
		Entropy: SystemEntropy(),
	}
}

// SearchResult summarises a finished search.
type SearchResult struct {
	Matches    uint64        // records written
	Candidates uint64        // keypairs examined by the collector
	Generated  uint64        // keypairs produced by all workers
	Dropped    uint64        // keypairs discarded by a PolicyDrop queue
	Pending    int           // keypairs left in the queue at shutdown
	Elapsed    time.Duration // wall time of Run
}

// Searcher wires workers, queue and collector together. A Searcher runs
// once.
type Searcher struct {
	cfg       SearchConfig
	queue     *Queue
	collector *Collector
	workers   []*Worker
	logger    zerolog.Logger
}

// NewSearcher validates cfg and builds the pipeline writing to sink.
func NewSearcher(cfg SearchConfig, sink io.Writer) (*Searcher, error) {
	if cfg.Threads < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidThreadCount, cfg.Threads)
	}
	if sink == nil {
		return nil, errors.New("output sink is required")
	}
	if cfg.Entropy == nil {
		cfg.Entropy = SystemEntropy()
	}

	queue, err := NewQueue(cfg.Queue)
	if err != nil {
		return nil, err
	}

	source := NewKeySource(cfg.Entropy)
	workers := make([]*Worker, cfg.Threads)
	for i := range workers {
		workers[i] = NewWorker(i, source, queue)
	}

	return &Searcher{
		cfg:       cfg,
		queue:     queue,
		collector: NewCollector(cfg.Filter, sink, queue).WithMaxMatches(cfg.MaxMatches),
		workers:   workers,
		logger:    zerolog.Nop(),
	}, nil
}

// WithMatchHandler sets the callback invoked after every written match.
func (s *Searcher) WithMatchHandler(fn MatchHandler) *Searcher {
	s.collector.WithMatchHandler(fn)
	return s
}

// WithLogger sets the logger used for lifecycle messages.
func (s *Searcher) WithLogger(logger zerolog.Logger) *Searcher {
	s.logger = logger
	return s
}

// Candidates returns the number of keypairs examined so far. Safe to call
// while Run is in progress.
func (s *Searcher) Candidates() uint64 {
	return s.collector.Candidates()
}

// Matches returns the number of records written so far.
func (s *Searcher) Matches() uint64 {
	return s.collector.Matches()
}

// Generated returns the number of keypairs produced by all workers so far.
func (s *Searcher) Generated() uint64 {
	var total uint64
	for _, w := range s.workers {
		total += w.Generated()
	}
	return total
}

// Run starts the workers and runs the collector on the calling goroutine.
//
// It returns when ctx is cancelled, when MaxMatches is reached, or when a
// worker faults. In every case the remaining workers are cancelled and
// joined before Run returns, and no record is written after a fault. The
// returned error is the first *WorkerFault or sink error, if any.
func (s *Searcher) Run(ctx context.Context) (*SearchResult, error) {
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range s.workers {
		s.logger.Info().Int("thread", w.ID()).Msg("Starting thread")
		g.Go(func() error {
			return w.Run(gctx)
		})
	}

	s.logger.Debug().
		Str("filter", s.cfg.Filter).
		Int("threads", len(s.workers)).
		Str("queue_policy", string(s.queue.Policy())).
		Msg("Collector running")

	collectErr := s.collector.Run(gctx)
	cancel()
	workerErr := g.Wait()
	s.queue.Close()

	stats := s.queue.Stats()
	result := &SearchResult{
		Matches:    s.collector.Matches(),
		Candidates: s.collector.Candidates(),
		Generated:  s.Generated(),
		Dropped:    stats.Dropped,
		Pending:    s.queue.Len(),
		Elapsed:    time.Since(start),
	}

	if workerErr != nil {
		return result, workerErr
	}
	return result, collectErr
}
