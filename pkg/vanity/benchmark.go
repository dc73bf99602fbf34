package vanity

import (
	"context"
	"fmt"
	"io"
	"time"
)

// DefaultProjectedCores is the core count used for the illustrative
// multi-core throughput projection.
const DefaultProjectedCores = 12

// unmatchableFilter contains non-hex characters, so no encoded key can
// start with it and the filtering phase never writes.
const unmatchableFilter = "impossible"

// BenchmarkReport holds the timings of a benchmark run.
type BenchmarkReport struct {
	Samples int

	TotalGeneration time.Duration
	AvgGeneration   time.Duration
	Throughput      float64 // keys per second on one goroutine

	ProjectedCores      int
	ProjectedThroughput float64 // Throughput * ProjectedCores, not measured

	TotalFiltering time.Duration
	AvgFiltering   time.Duration
}

// Benchmark measures key generation and collector-side filtering serially
// on the calling goroutine. It spawns no workers and writes nothing.
type Benchmark struct {
	source  *KeySource
	samples int
	cores   int
}

// NewBenchmark creates a benchmark running samples iterations of each phase.
func NewBenchmark(source *KeySource, samples int) *Benchmark {
	return &Benchmark{
		source:  source,
		samples: samples,
		cores:   DefaultProjectedCores,
	}
}

// WithProjectedCores sets the core count for the throughput projection.
func (b *Benchmark) WithProjectedCores(n int) *Benchmark {
	if n > 0 {
		b.cores = n
	}
	return b
}

// Run executes both phases.
//
// Phase 1 times generate+enqueue for every sample. Phase 2 times
// receive+encode+filter for every sample against a filter that cannot
// match.
func (b *Benchmark) Run(ctx context.Context) (*BenchmarkReport, error) {
	if b.samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleSize, b.samples)
	}

	queue, err := NewQueue(DefaultQueueConfig())
	if err != nil {
		return nil, err
	}
	collector := NewCollector(unmatchableFilter, io.Discard, queue)

	var totalGeneration time.Duration
	for i := 0; i < b.samples; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		kp, err := b.source.Generate()
		if err != nil {
			return nil, err
		}
		if err := queue.Send(ctx, kp); err != nil {
			return nil, err
		}
		totalGeneration += time.Since(start)
	}

	var totalFiltering time.Duration
	for i := 0; i < b.samples; i++ {
		start := time.Now()
		kp, err := queue.Receive(ctx)
		if err != nil {
			return nil, err
		}
		_, _ = collector.Accepts(kp)
		totalFiltering += time.Since(start)
	}

	return newBenchmarkReport(b.samples, b.cores, totalGeneration, totalFiltering), nil
}

func newBenchmarkReport(samples, cores int, generation, filtering time.Duration) *BenchmarkReport {
	r := &BenchmarkReport{
		Samples:         samples,
		TotalGeneration: generation,
		AvgGeneration:   generation / time.Duration(samples),
		ProjectedCores:  cores,
		TotalFiltering:  filtering,
		AvgFiltering:    filtering / time.Duration(samples),
	}
	if generation > 0 {
		r.Throughput = float64(samples) / generation.Seconds()
	}
	r.ProjectedThroughput = r.Throughput * float64(cores)
	return r
}
