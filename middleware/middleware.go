// Package middleware implements the onion model middleware chain
// around an exported broker.Handler.
//
// A broker.ExportedService method is installed by a plain
// broker.Handler (decode request, do the work, return responses).
// Wrapping one in middleware lets cross-cutting concerns (logging,
// timeouts, retries) sit outside that handler without changing it.
//
// Onion model execution order:
//
//	Chain(A, B, C)(handler)  →  A(B(C(handler)))
//
//	Call:     A.before → B.before → C.before → handler
//	Return:   handler → C.after → B.after → A.after
//
// Each middleware can:
//   - Do pre-processing (before calling next)
//   - Call next(req) to pass to the next layer
//   - Do post-processing (after next returns)
//   - Short-circuit by returning early without calling next
package middleware

import "github.com/hearthy-oss/hearthproxy/broker"

// Middleware takes a handler and returns a new handler that wraps it.
// This is the decorator pattern — each middleware adds behavior around
// the next handler.
type Middleware func(next broker.Handler) broker.Handler

// Chain composes multiple middlewares into a single middleware.
// It builds the chain from right to left so that the first middleware
// in the list is the outermost layer (executed first on the call, last
// on the return).
//
// Example:
//
//	chain := Chain(Logging(logger), Timeout(time.Second))
//	handler := chain(businessHandler)
//	// Execution: Logging → Timeout → businessHandler → Timeout → Logging
func Chain(middlewares ...Middleware) Middleware {
	return func(next broker.Handler) broker.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
