package time

import (
	"context"
	"time"
)

const nowContextKey contextKey = iota

type (
	Clock interface {
		Now(context.Context) time.Time
	}

	AdjustableClock interface {
		Clock
		Set(context.Context, time.Time) context.Context
		Freeze(context.Context) context.Context
	}

	contextKey int
)

type clock struct{}

func NewClock() AdjustableClock {
	return clock{}
}

func (c clock) Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(nowContextKey).(time.Time); ok {
		return t
	}

	return time.Now()
}

func (c clock) Set(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, nowContextKey, t)
}

// Freeze keeps Now stable for the rest of the context lifetime, e.g. a single request
func (c clock) Freeze(ctx context.Context) context.Context {
	if _, ok := ctx.Value(nowContextKey).(time.Time); ok {
		return ctx
	}

	return c.Set(ctx, time.Now())
}

type fixedClock struct {
	now time.Time
}

func NewFixedClock(now time.Time) Clock {
	return fixedClock{now: now}
}

func (c fixedClock) Now(context.Context) time.Time {
	return c.now
}
