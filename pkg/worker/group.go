package worker

import (
	"context"
	"sync"
)

type Group interface {
	Do(ErrorJob)
	Wait() error
}

type group struct {
	ctx       context.Context
	ctxCancel context.CancelFunc
	pool      Pool
	wg        sync.WaitGroup

	errOnce sync.Once
	err     error
}

// NewGroup cancels the returned context after the first job error
func NewGroup(ctx context.Context) (context.Context, Group) {
	return WithinGroup(ctx, NewPool(MaxWorkersCountUnlimited))
}

func WithinGroup(ctx context.Context, pool Pool) (context.Context, Group) {
	ctx, cancel := context.WithCancel(ctx)
	return ctx, &group{
		ctx:       ctx,
		ctxCancel: cancel,
		pool:      pool,
	}
}

func (g *group) Do(job ErrorJob) {
	g.wg.Add(1)
	err := g.pool.Do(g.ctx, func(ctx context.Context) {
		defer g.wg.Done()
		g.handleErr(job(ctx))
	})
	if err != nil {
		g.handleErr(err)
		g.wg.Done()
	}
}

func (g *group) Wait() error {
	g.wg.Wait()
	g.ctxCancel()
	return g.err
}

func (g *group) handleErr(err error) {
	if err == nil {
		return
	}

	g.errOnce.Do(func() {
		g.err = err
		g.ctxCancel()
	})
}
