package core

// limiter.go implements concurrency control for batch execution.
//
// The limiter uses a semaphore pattern to restrict simultaneously running
// batches to a configurable maximum. When all slots are occupied, new
// submissions wait up to maxWait before failing with ErrTooManyBatches.
// An acquired slot delays a batch's start; it never cancels a running one.

import (
	"context"
	"errors"
	"time"
)

// ErrTooManyBatches is returned when all batch slots are occupied and the
// wait timeout expires. Clients should retry after a short delay.
var ErrTooManyBatches = errors.New("too many concurrent batches, please try again later")

// DefaultMaxConcurrentBatches is the default limit for parallel batch runs.
const DefaultMaxConcurrentBatches = 5

// DefaultMaxWaitTime is how long to wait for a slot before rejecting.
const DefaultMaxWaitTime = 30 * time.Second

// BatchLimiter controls how many batches run at once.
type BatchLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration
}

// NewBatchLimiter creates a limiter that allows at most maxConcurrent
// simultaneous batches. Requests that cannot acquire a slot within maxWait
// receive ErrTooManyBatches.
func NewBatchLimiter(maxConcurrent int, maxWait time.Duration) *BatchLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentBatches
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}
	return &BatchLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire attempts to acquire a batch slot. Returns nil on success and
// ErrTooManyBatches when the timeout expires. The caller MUST call Release
// when the batch completes (use defer).
func (l *BatchLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyBatches
	}
}

// Release frees a slot acquired by Acquire.
func (l *BatchLimiter) Release() {
	select {
	case <-l.semaphore:
	default:
	}
}
