package worker

import (
	"context"
	"runtime"
	"sync"
)

const (
	MaxWorkersCountNumCPU    = -1
	MaxWorkersCountUnlimited = 0
)

type Pool interface {
	// Do blocks until a worker is available, returns ctx error if it is done before that
	Do(ctx context.Context, job Job) error
	Wait()
}

type pool struct {
	slots chan struct{}
	wg    sync.WaitGroup
}

func NewPool(maxWorkers int) Pool {
	if maxWorkers <= MaxWorkersCountNumCPU {
		maxWorkers = runtime.NumCPU()
	}

	p := &pool{}
	if maxWorkers > MaxWorkersCountUnlimited {
		p.slots = make(chan struct{}, maxWorkers)
	}

	return p
}

func (p *pool) Do(ctx context.Context, job Job) error {
	if p.slots != nil {
		select {
		case p.slots <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	p.wg.Add(1)
	go func() {
		defer func() {
			if p.slots != nil {
				<-p.slots
			}
			p.wg.Done()
		}()

		job(ctx)
	}()

	return nil
}

func (p *pool) Wait() {
	p.wg.Wait()
}

// Execute runs fn on the pool and waits for its result or for ctx to be done.
func Execute[T any](ctx context.Context, p Pool, fn func() (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}

	if err := ctx.Err(); err != nil {
		var blank T
		return blank, err
	}

	resultChan := make(chan result, 1)
	err := p.Do(ctx, func(context.Context) {
		value, err := fn()
		resultChan <- result{value, err}
	})
	if err != nil {
		var blank T
		return blank, err
	}

	select {
	case r := <-resultChan:
		return r.value, r.err
	case <-ctx.Done():
		var blank T
		return blank, ctx.Err()
	}
}
