package limiter

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
)

const (
	minRateLimitRPS = 1
	maxRateLimitRPS = 100
)

// Limiter paces outgoing requests. A nil *Limiter or one built with rps 0 never
// blocks.
type Limiter struct {
	limiter *rate.Limiter
	logger  ports.Logger
}

// New returns a limiter allowing rps events per second with a burst of rps.
// rps == 0 disables limiting; values outside [1,100] are clamped.
func New(rps int, logger ports.Logger) *Limiter {
	if rps <= 0 {
		return &Limiter{logger: logger}
	}
	limitValue := rps
	if limitValue < minRateLimitRPS {
		limitValue = minRateLimitRPS
	}
	if limitValue > maxRateLimitRPS {
		logger.Warnf(context.Background(), "Rate limit %d RPS exceeds maximum, using %d RPS", rps, maxRateLimitRPS)
		limitValue = maxRateLimitRPS
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(limitValue), limitValue),
		logger:  logger,
	}
}

func (l *Limiter) Enabled() bool {
	return l != nil && l.limiter != nil
}

func (l *Limiter) Wait(ctx context.Context) error {
	if !l.Enabled() {
		return ctx.Err()
	}
	if err := l.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			l.logger.Warnf(ctx, "Error waiting for rate limiter: %v", err)
		}
		return err
	}
	return nil
}
