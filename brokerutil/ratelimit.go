// Package brokerutil holds small, optional pieces of broker policy
// that don't belong in the broker's core dispatch logic.
package brokerutil

import "golang.org/x/time/rate"

// RateLimiter throttles incoming RPC requests on one connection using
// a token-bucket limiter, adapted from the teacher's
// middleware.RateLimitMiddleware: the limiter is built once and shared
// across every call to Allow, not recreated per request.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter refilling at r requests/second with
// the given burst size.
func NewRateLimiter(r float64, burst int) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(r), burst)}
}

// Allow reports whether a request arriving now should be let through.
func (l *RateLimiter) Allow() bool {
	return l.limiter.Allow()
}
