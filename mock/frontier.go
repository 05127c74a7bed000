package mock

import (
	"context"

	"github.com/fwojciec/reviewskim"
)

var (
	_ reviewskim.MovieQueue    = (*MovieQueue)(nil)
	_ reviewskim.DomainLimiter = (*DomainLimiter)(nil)
)

// MovieQueue is a mock implementation of reviewskim.MovieQueue.
type MovieQueue struct {
	PushFn func(id int) bool
	PopFn  func() (int, bool)
	LenFn  func() int
}

func (q *MovieQueue) Push(id int) bool {
	return q.PushFn(id)
}

func (q *MovieQueue) Pop() (int, bool) {
	return q.PopFn()
}

func (q *MovieQueue) Len() int {
	return q.LenFn()
}

// DomainLimiter is a mock implementation of reviewskim.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
