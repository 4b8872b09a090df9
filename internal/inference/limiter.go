package inference

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// NewLimiter returns a limiter allowing requestsPerMinute calls, shared by
// every session using the same client. A non-positive value disables limiting.
func NewLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}

// Wait blocks until the limiter admits a call, classifying a cancelled wait
func Wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	if err := limiter.Wait(ctx); err != nil {
		// rate.Limiter refuses up front when the deadline is shorter than the wait
		return &Error{Kind: KindTimeout, Message: "rate limit wait exceeded the deadline", Err: err}
	}
	return nil
}
