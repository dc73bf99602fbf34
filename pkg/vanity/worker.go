package vanity

import (
	"context"
	"sync/atomic"
)

// Worker generates keypairs in a tight loop and pushes them into the queue.
type Worker struct {
	id        int
	source    *KeySource
	queue     *Queue
	generated atomic.Uint64
}

// NewWorker creates a generator worker.
func NewWorker(id int, source *KeySource, queue *Queue) *Worker {
	return &Worker{id: id, source: source, queue: queue}
}

// ID returns the worker's index.
func (w *Worker) ID() int {
	return w.id
}

// Generated returns the number of keypairs this worker has produced.
func (w *Worker) Generated() uint64 {
	return w.generated.Load()
}

// Run generates until ctx is cancelled, which returns nil. An entropy
// failure or a closed queue returns a *WorkerFault.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		kp, err := w.source.Generate()
		if err != nil {
			return &WorkerFault{WorkerID: w.id, Err: err}
		}
		w.generated.Add(1)

		if err := w.queue.Send(ctx, kp); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return &WorkerFault{WorkerID: w.id, Err: err}
		}
	}
}
