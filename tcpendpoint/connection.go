package tcpendpoint

import (
	"net"

	"go.uber.org/zap"

	"github.com/hearthy-oss/hearthproxy/pipe"
)

// eventBufSize bounds how far the two reader goroutines and any
// self-close call can get ahead of the event-loop goroutine's drain.
// It only needs to be large enough that Close, called from inside a
// callback already running on the loop goroutine, never has to block
// on its own queue.
const eventBufSize = 32

// Wiring is supplied by the caller of Run to build whatever sits on
// top of the two raw endpoints — an InterceptPipe with a handler, or a
// bare SimplePipe for plain forwarding.
type Wiring func(client, backend pipe.Endpoint)

// Run drives one client/backend connection pair to completion: it
// builds both Endpoints sharing one event channel, lets build wire
// them into a pipe, and then serializes every Pull/Push/Closed
// dispatch through this goroutine until both sides are closed. It
// blocks until the session ends, so callers run it in its own
// goroutine per accepted connection — one per connection, matching
// server.Server.Serve's accept loop.
func Run(client, backend net.Conn, build Wiring, logger *zap.Logger) {
	events := make(chan event, eventBufSize)
	clientEp := newEndpoint(client, "client", events)
	backendEp := newEndpoint(backend, "backend", events)

	build(clientEp, backendEp)

	remaining := 2
	for remaining > 0 {
		ev, ok := <-events
		if !ok {
			return
		}
		if ev.typ == pipe.EventClosed {
			remaining--
		}
		if ev.ep.cb != nil {
			ev.ep.cb(ev.ep, ev.typ)
		}
	}
	logger.Debug("connection pair finished")
}
