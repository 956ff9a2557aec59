package middleware

import (
	"fmt"
	"time"

	"github.com/hearthy-oss/hearthproxy/broker"
	"github.com/hearthy-oss/hearthproxy/schema"
)

// Timeout enforces a maximum duration for each handler call. If the
// handler doesn't complete within d, it returns an error immediately.
//
// The handler goroutine is not cancelled — it keeps running in the
// background and its eventual result is discarded. A handler that
// needs real cancellation must accept and check a context itself;
// broker.Handler doesn't carry one, so this only controls how long the
// caller waits.
func Timeout(d time.Duration) Middleware {
	return func(next broker.Handler) broker.Handler {
		return func(req *schema.MessageValue) ([]*schema.MessageValue, error) {
			type result struct {
				resp []*schema.MessageValue
				err  error
			}
			done := make(chan result, 1)
			go func() {
				resp, err := next(req)
				done <- result{resp, err}
			}()

			select {
			case r := <-done:
				return r.resp, r.err
			case <-time.After(d):
				return nil, fmt.Errorf("middleware: handler call timed out after %s", d)
			}
		}
	}
}
