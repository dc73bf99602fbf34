package vanity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWorker_RunUntilCancelled(t *testing.T) {
	q, _ := NewQueue(DefaultQueueConfig())
	w := NewWorker(3, NewKeySource(SystemEntropy()), q)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := w.Run(ctx); err != nil {
		t.Fatalf("Expected nil on cancellation, got %v", err)
	}
	if w.ID() != 3 {
		t.Errorf("Expected ID 3, got %d", w.ID())
	}
	if w.Generated() == 0 {
		t.Fatal("Worker produced nothing")
	}
	if uint64(q.Len()) != w.Generated() {
		t.Errorf("Expected every generated keypair queued: generated=%d queued=%d", w.Generated(), q.Len())
	}
}

func TestWorker_FaultOnClosedQueue(t *testing.T) {
	q, _ := NewQueue(DefaultQueueConfig())
	q.Close()
	w := NewWorker(1, NewKeySource(SystemEntropy()), q)

	err := w.Run(context.Background())

	var fault *WorkerFault
	if !errors.As(err, &fault) {
		t.Fatalf("Expected *WorkerFault, got %v", err)
	}
	if fault.WorkerID != 1 {
		t.Errorf("Expected worker 1, got %d", fault.WorkerID)
	}
	if !errors.Is(err, ErrQueueClosed) {
		t.Errorf("Expected fault to wrap ErrQueueClosed, got %v", err)
	}
}

func TestWorker_FaultOnEntropyFailure(t *testing.T) {
	q, _ := NewQueue(DefaultQueueConfig())
	w := NewWorker(0, NewKeySource(failingEntropy{}), q)

	err := w.Run(context.Background())
	if !errors.Is(err, ErrEntropy) {
		t.Fatalf("Expected ErrEntropy fault, got %v", err)
	}
	if q.Len() != 0 {
		t.Errorf("Nothing should be queued after an entropy failure, got %d", q.Len())
	}
}

func TestWorker_CancelledWhileBlocked(t *testing.T) {
	q, _ := NewQueue(QueueConfig{Policy: PolicyBlock, Capacity: 1})
	w := NewWorker(0, NewKeySource(SystemEntropy()), q)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil after cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Worker blocked on a full queue did not stop")
	}
	if q.Len() != 1 {
		t.Errorf("Expected the queue to hold exactly its capacity, got %d", q.Len())
	}
}
