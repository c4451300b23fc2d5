package campaign

import (
	"context"
	"time"
)

// pacer enforces the inter-send delay used as a rate limiter against
// relay throttling. It is a coarse pause, not a precise clock contract.
type pacer struct {
	delay time.Duration

	// sleep is overridable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func newPacer(delay time.Duration) *pacer {
	return &pacer{
		delay: delay,
		sleep: sleepCtx,
	}
}

// wait pauses for the configured delay, or returns early if the context
// is cancelled. A zero delay is a no-op.
func (p *pacer) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}
	return p.sleep(ctx, p.delay)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
