package campaign

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacerZeroDelayIsNoop(t *testing.T) {
	p := newPacer(0)
	p.sleep = func(ctx context.Context, d time.Duration) error {
		t.Fatal("sleep must not be called for a zero delay")
		return nil
	}

	assert.NoError(t, p.wait(context.Background()))
}

func TestPacerWaitsConfiguredDelay(t *testing.T) {
	p := newPacer(25 * time.Millisecond)

	start := time.Now()
	require.NoError(t, p.wait(context.Background()))

	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
}

func TestPacerHonorsCancellation(t *testing.T) {
	p := newPacer(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.wait(ctx), context.Canceled)
}
