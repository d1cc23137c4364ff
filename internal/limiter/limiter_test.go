package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portsmocks "github.com/olusolaa/visual-drift-detector/internal/core/ports/mocks"
)

func TestLimiter(t *testing.T) {
	mockLogger := portsmocks.NewLogger(t)
	mockLogger.On("Warnf", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()

	t.Run("Disabled", func(t *testing.T) {
		l := New(0, mockLogger)
		assert.False(t, l.Enabled())
		require.NoError(t, l.Wait(context.Background()))

		var nilLimiter *Limiter
		require.NoError(t, nilLimiter.Wait(context.Background()))
	})

	t.Run("Burst Then Wait", func(t *testing.T) {
		l := New(2, mockLogger)
		require.True(t, l.Enabled())
		ctx := context.Background()
		require.NoError(t, l.Wait(ctx))
		require.NoError(t, l.Wait(ctx))

		start := time.Now()
		require.NoError(t, l.Wait(ctx))
		assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)
	})

	t.Run("Clamped", func(t *testing.T) {
		l := New(1000, mockLogger)
		assert.Equal(t, maxRateLimitRPS, l.limiter.Burst())
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		l := New(1, mockLogger)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.ErrorIs(t, l.Wait(ctx), context.Canceled)
	})
}
