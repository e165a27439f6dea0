package worker

import (
	"context"
	"sync"
)

type ErrorJob func(context.Context) error

// Group runs jobs on a pool and reports the first error.
type Group interface {
	Do(ErrorJob)
	Wait() error
}

type group struct {
	ctx                 context.Context
	ctxCancel           context.CancelFunc
	cancelCtxAfterError bool

	pool Pool
	wg   sync.WaitGroup

	errOnce   sync.Once
	errResult error
	closeOnce sync.Once
}

// WithinFailFastGroup cancels the jobs context after the first error.
func WithinFailFastGroup(ctx context.Context, pool Pool) Group {
	return newGroup(ctx, pool, true)
}

// WithinFailSafeGroup lets the remaining jobs complete after an error.
func WithinFailSafeGroup(ctx context.Context, pool Pool) Group {
	return newGroup(ctx, pool, false)
}

func NewFailFastGroup(ctx context.Context) Group {
	return WithinFailFastGroup(ctx, NewPool(MaxWorkersCountUnlimited))
}

func NewFailSafeGroup(ctx context.Context) Group {
	return WithinFailSafeGroup(ctx, NewPool(MaxWorkersCountUnlimited))
}

func newGroup(ctx context.Context, pool Pool, cancelCtxAfterError bool) *group {
	ctx, ctxCancel := context.WithCancel(ctx)
	return &group{
		ctx:                 ctx,
		ctxCancel:           ctxCancel,
		cancelCtxAfterError: cancelCtxAfterError,
		pool:                pool,
	}
}

func (g *group) Do(job ErrorJob) {
	g.wg.Add(1)
	g.pool.Do(func() {
		defer g.wg.Done()

		err := job(g.ctx)
		if err == nil {
			return
		}

		g.errOnce.Do(func() {
			g.errResult = err
			if g.cancelCtxAfterError {
				g.ctxCancel()
			}
		})
	})
}

func (g *group) Wait() error {
	g.wg.Wait()
	g.closeOnce.Do(g.ctxCancel)

	return g.errResult
}
