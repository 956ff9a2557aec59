package middleware

import (
	"time"

	"go.uber.org/zap"

	"github.com/hearthy-oss/hearthproxy/broker"
	"github.com/hearthy-oss/hearthproxy/schema"
)

// Logging records each call's request type, duration, and any error.
// It captures the start time before calling next, and logs the
// elapsed time after next returns.
func Logging(logger *zap.Logger) Middleware {
	return func(next broker.Handler) broker.Handler {
		return func(req *schema.MessageValue) ([]*schema.MessageValue, error) {
			start := time.Now()
			resp, err := next(req)
			fields := []zap.Field{zap.Duration("duration", time.Since(start))}
			if req != nil {
				fields = append(fields, zap.String("type", req.Type.Name))
			}
			if err != nil {
				logger.Warn("handler call failed", append(fields, zap.Error(err))...)
			} else {
				logger.Debug("handler call completed", fields...)
			}
			return resp, err
		}
	}
}
