// Package permit provides a fixed-capacity counting permit pool used to cap
// concurrent outbound inference work.
package permit

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Pool hands out up to Capacity permits at a time.
type Pool struct {
	sem      *semaphore.Weighted
	capacity int64
	inUse    atomic.Int64
}

// New returns a pool with the given capacity. Values below 1 become 1.
func New(capacity int) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: int64(capacity),
	}
}

// Capacity returns the maximum number of permits.
func (p *Pool) Capacity() int {
	return int(p.capacity)
}

// InUse returns the number of permits currently held.
func (p *Pool) InUse() int {
	return int(p.inUse.Load())
}

// Do acquires a permit, runs fn, and releases the permit when fn returns or
// panics. It blocks until a permit is free or ctx is done.
func (p *Pool) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return nil
	}
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire permit: %w", err)
	}
	p.inUse.Add(1)
	defer func() {
		p.inUse.Add(-1)
		p.sem.Release(1)
	}()
	return fn(ctx)
}
