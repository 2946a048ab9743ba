package service

import (
	"context"
	"time"
)

// Pacer is called once after every record to keep requests under the upstream rate limit.
type Pacer interface {
	Pause(ctx context.Context) error
}

// FixedDelay pauses for the same duration after every record, whatever its outcome.
type FixedDelay time.Duration

// Pause blocks for the delay or until ctx is done.
func (d FixedDelay) Pause(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
