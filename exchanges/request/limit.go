package request

import (
	"time"

	"golang.org/x/time/rate"
)

// NewRateLimit creates a new RateLimit based of time interval and how many
// actions allowed and breaks it down to an actions-per-second basis -- Burst
// rate is kept as one as this is not supported for out-bound requests.
func NewRateLimit(interval time.Duration, actions int) *rate.Limiter {
	if actions <= 0 || interval <= 0 {
		// Returns an un-restricted rate limiter
		return rate.NewLimiter(rate.Inf, 1)
	}

	i := 1 / interval.Seconds()
	rps := i * float64(actions)
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// WithLimiter sets the outbound rate limiter for the requester
func WithLimiter(l *rate.Limiter) RequesterOption {
	return func(r *Requester) {
		r.limiter = l
	}
}

// WithUserAgent sets the user agent header sent on every request
func WithUserAgent(ua string) RequesterOption {
	return func(r *Requester) {
		r.UserAgent = ua
	}
}
