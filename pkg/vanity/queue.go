package vanity

import (
	"context"
	"fmt"
	"sync"
)

// QueuePolicy selects what a producer does when the queue is at capacity.
type QueuePolicy string

const (
	// PolicyUnbounded never refuses an item; producers never wait. Memory
	// grows with the backlog.
	PolicyUnbounded QueuePolicy = "unbounded"
	// PolicyBlock makes producers wait until the consumer frees a slot.
	PolicyBlock QueuePolicy = "block"
	// PolicyDrop discards the item being sent and counts it.
	PolicyDrop QueuePolicy = "drop"
)

// ParseQueuePolicy parses a policy name as accepted on the command line.
func ParseQueuePolicy(s string) (QueuePolicy, error) {
	switch p := QueuePolicy(s); p {
	case PolicyUnbounded, PolicyBlock, PolicyDrop:
		return p, nil
	case "":
		return PolicyUnbounded, nil
	default:
		return "", fmt.Errorf("unknown queue policy %q (want unbounded, block or drop)", s)
	}
}

// QueueConfig configures the worker-to-collector queue.
type QueueConfig struct {
	// Policy applied when Capacity is reached (default: unbounded)
	Policy QueuePolicy

	// Capacity bounds the backlog for PolicyBlock and PolicyDrop; ignored
	// for PolicyUnbounded
	Capacity int
}

// DefaultQueueConfig returns an unbounded queue configuration.
func DefaultQueueConfig() QueueConfig {
	return QueueConfig{Policy: PolicyUnbounded}
}

// QueueStats counts queue traffic.
type QueueStats struct {
	Sent     uint64
	Received uint64
	Dropped  uint64
}

// Queue is a multi-producer, single-consumer FIFO of keypairs. Every item
// accepted by Send is returned by exactly one Receive.
type Queue struct {
	mu       sync.Mutex
	policy   QueuePolicy
	capacity int
	items    []Keypair
	closed   bool
	stats    QueueStats

	// readable and writable are created lazily by a waiter and closed on
	// the next push or pop respectively.
	readable chan struct{}
	writable chan struct{}
}

// NewQueue creates a queue for cfg.
func NewQueue(cfg QueueConfig) (*Queue, error) {
	policy, err := ParseQueuePolicy(string(cfg.Policy))
	if err != nil {
		return nil, err
	}
	if policy != PolicyUnbounded && cfg.Capacity <= 0 {
		return nil, fmt.Errorf("%w: %s queue needs a positive capacity, got %d", ErrInvalidCapacity, policy, cfg.Capacity)
	}
	return &Queue{policy: policy, capacity: cfg.Capacity}, nil
}

// Policy returns the queue's capacity policy.
func (q *Queue) Policy() QueuePolicy {
	return q.policy
}

// Send enqueues kp. It only waits under PolicyBlock with a full queue, in
// which case it returns ctx.Err() on cancellation. It returns
// ErrQueueClosed once the queue is closed.
func (q *Queue) Send(ctx context.Context, kp Keypair) error {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return ErrQueueClosed
		}
		if q.policy == PolicyUnbounded || len(q.items) < q.capacity {
			q.items = append(q.items, kp)
			q.stats.Sent++
			if q.readable != nil {
				close(q.readable)
				q.readable = nil
			}
			q.mu.Unlock()
			return nil
		}
		if q.policy == PolicyDrop {
			q.stats.Dropped++
			q.mu.Unlock()
			return nil
		}

		if q.writable == nil {
			q.writable = make(chan struct{})
		}
		wait := q.writable
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wait:
		}
	}
}

// Receive dequeues the oldest item, waiting until one arrives. It returns
// ctx.Err() on cancellation, even with items queued, and ErrQueueClosed once
// the queue is closed and empty.
func (q *Queue) Receive(ctx context.Context) (Keypair, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Keypair{}, err
		}

		q.mu.Lock()
		if len(q.items) > 0 {
			kp := q.pop()
			q.mu.Unlock()
			return kp, nil
		}
		if q.closed {
			q.mu.Unlock()
			return Keypair{}, ErrQueueClosed
		}

		if q.readable == nil {
			q.readable = make(chan struct{})
		}
		wait := q.readable
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return Keypair{}, ctx.Err()
		case <-wait:
		}
	}
}

// TryReceive dequeues the oldest item without waiting.
func (q *Queue) TryReceive() (Keypair, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Keypair{}, false
	}
	return q.pop(), true
}

// pop must be called with q.mu held and a non-empty queue.
func (q *Queue) pop() Keypair {
	kp := q.items[0]
	q.items[0] = Keypair{}
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	q.stats.Received++
	if q.writable != nil {
		close(q.writable)
		q.writable = nil
	}
	return kp
}

// unreceive puts kp back at the head of the queue. Only the consumer that
// just received kp may call it.
func (q *Queue) unreceive(kp Keypair) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append([]Keypair{kp}, q.items...)
	q.stats.Received--
}

// Close stops accepting items and wakes every waiter. Items already queued
// can still be received.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	if q.readable != nil {
		close(q.readable)
		q.readable = nil
	}
	if q.writable != nil {
		close(q.writable)
		q.writable = nil
	}
}

// Len returns the current backlog.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Stats returns a snapshot of the traffic counters.
func (q *Queue) Stats() QueueStats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stats
}
