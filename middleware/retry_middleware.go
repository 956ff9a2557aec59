package middleware

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hearthy-oss/hearthproxy/broker"
	"github.com/hearthy-oss/hearthproxy/schema"
)

// Retry re-invokes a handler up to maxRetries times when it fails with
// a transient-looking error, backing off exponentially between
// attempts. Only errors whose message mentions "timeout" or
// "connection refused" are treated as transient; anything else is
// returned immediately, since retrying a handler that deterministically
// rejects its input just wastes the attempt.
func Retry(logger *zap.Logger, maxRetries int, baseDelay time.Duration) Middleware {
	return func(next broker.Handler) broker.Handler {
		return func(req *schema.MessageValue) ([]*schema.MessageValue, error) {
			resp, err := next(req)
			for i := 0; i < maxRetries && isTransient(err); i++ {
				logger.Warn("retrying handler call", zap.Int("attempt", i+1), zap.Error(err))
				time.Sleep(baseDelay * time.Duration(1<<i))
				resp, err = next(req)
			}
			return resp, err
		}
	}
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "connection refused")
}
