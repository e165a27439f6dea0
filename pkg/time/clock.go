package time

import (
	"context"
	"time"
)

const nowContextKey contextKey = iota

type (
	// Clock reads the current time from ctx when it was pinned there, e.g. by tests.
	Clock interface {
		Now(context.Context) time.Time
	}

	clock struct {
		source func() time.Time
	}
	contextKey int
)

func NewClock() Clock {
	return clock{source: time.Now}
}

// NewClockWithSource reads the time from source, e.g. a test clock that can be moved forward.
func NewClockWithSource(source func() time.Time) Clock {
	return clock{source: source}
}

func (c clock) Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(nowContextKey).(time.Time); ok {
		return t
	}

	return c.source()
}

func WithNow(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, nowContextKey, t)
}
