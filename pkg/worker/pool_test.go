package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klwxsrx/deskbooking/pkg/worker"
)

func TestPool_LimitsConcurrentJobs(t *testing.T) {
	const maxWorkers = 2
	p := worker.NewPool(maxWorkers)

	var running, maxRunning atomic.Int32
	for i := 0; i < 10; i++ {
		err := p.Do(context.Background(), func(context.Context) {
			current := running.Add(1)
			for {
				prev := maxRunning.Load()
				if current <= prev || maxRunning.CompareAndSwap(prev, current) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
		})
		require.NoError(t, err)
	}
	p.Wait()

	assert.LessOrEqual(t, maxRunning.Load(), int32(maxWorkers))
}

func TestPool_Do_ReturnsErrorWhenContextIsDone(t *testing.T) {
	p := worker.NewPool(1)
	release := make(chan struct{})
	require.NoError(t, p.Do(context.Background(), func(context.Context) { <-release }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Do(ctx, func(context.Context) {})
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	p.Wait()
}

func TestExecute_ReturnsJobResult(t *testing.T) {
	p := worker.NewPool(worker.MaxWorkersCountNumCPU)

	v, err := worker.Execute(context.Background(), p, func() (string, error) {
		return "hash", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hash", v)

	_, err = worker.Execute(context.Background(), p, func() (string, error) {
		return "", errors.New("failed")
	})
	assert.EqualError(t, err, "failed")
}

func TestGroup_ReturnsFirstErrorAndCancelsContext(t *testing.T) {
	ctx, g := worker.NewGroup(context.Background())

	g.Do(func(context.Context) error {
		return errors.New("job failed")
	})
	g.Do(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})

	err := g.Wait()
	assert.EqualError(t, err, "job failed")
	assert.Error(t, ctx.Err())
}
