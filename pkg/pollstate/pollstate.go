package pollstate

import (
	"context"
	"time"
)

const DEFAULT_LOOK_BACK = 7 * 24 * time.Hour

// Store remembers when responses were last polled.
type Store interface {
	LastPoll(ctx context.Context) (time.Time, bool, error)
	SetLastPoll(ctx context.Context, t time.Time) error
}

// Since returns the time to poll from: the stored value, or now minus
// lookBack when nothing is stored yet.
func Since(ctx context.Context, store Store, now time.Time, lookBack time.Duration) (time.Time, error) {
	last, ok, err := store.LastPoll(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if ok {
		return last, nil
	}
	if lookBack <= 0 {
		lookBack = DEFAULT_LOOK_BACK
	}
	return now.Add(-lookBack), nil
}
