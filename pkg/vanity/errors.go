package vanity

import (
	"errors"
	"fmt"
)

var (
	// ErrEntropy wraps failures of the entropy source. A worker never falls
	// back to a weaker source when it sees this error.
	ErrEntropy = errors.New("entropy source failed")

	// ErrQueueClosed is returned by Send once the receiving side is gone and
	// by Receive once the queue is closed and drained.
	ErrQueueClosed = errors.New("queue closed")

	// ErrInvalidCapacity is returned for bounded queue policies without a
	// positive capacity.
	ErrInvalidCapacity = errors.New("invalid queue capacity")

	// ErrInvalidThreadCount is returned for a negative worker count.
	ErrInvalidThreadCount = errors.New("invalid thread count")

	// ErrInvalidSampleSize is returned by Benchmark.Run for a non-positive
	// sample size.
	ErrInvalidSampleSize = errors.New("invalid benchmark sample size")

	// ErrMalformedRecord is returned when an output line is not
	// "<64 hex>;<64 hex>".
	ErrMalformedRecord = errors.New("malformed match record")

	// ErrRecordMismatch is returned by MatchRecord.Verify when the stored
	// public key does not belong to the stored private key or does not
	// satisfy the filter.
	ErrRecordMismatch = errors.New("match record mismatch")
)

// WorkerFault reports a generator worker that stopped on an unrecoverable
// error. The search supervisor cancels the remaining workers and the
// collector when it sees one.
type WorkerFault struct {
	WorkerID int
	Err      error
}

func (f *WorkerFault) Error() string {
	return fmt.Sprintf("worker %d: %v", f.WorkerID, f.Err)
}

func (f *WorkerFault) Unwrap() error {
	return f.Err
}
