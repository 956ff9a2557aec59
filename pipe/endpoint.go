// Package pipe implements the bidirectional, buffer-driven proxy pipe:
// a reentrancy-safe event loop moving bytes between two endpoints
// (SimplePipe), and on top of it a three-mode packet interceptor that
// discovers the Aurora handshake and decides whether to decode and
// filter traffic or simply forward it (InterceptPipe).
//
// Grounded on hearthy.proxy.pipe (SimpleBuf, TcpEndpoint, SimplePipe)
// and hearthy.proxy.intercept (SplitterBuf, InterceptPipe).
package pipe

import "github.com/hearthy-oss/hearthproxy/frame"

// EventType is the kind of event an Endpoint reports to its owning
// pipe, mirroring TcpEndpoint.cb's ev_type strings.
type EventType int

const (
	EventMayPull EventType = iota
	EventMayPush
	EventClosed
)

// Callback is invoked by an Endpoint when it becomes readable/writable
// or closes. Implementations (SimplePipe.onEndpointEvent) must be
// reentrant: a Pull or Push call inside the callback can itself close
// a connection and re-enter the callback before the outer call
// returns, exactly as the source's docstring on _on_endpoint_event
// warns.
type Callback func(ep Endpoint, ev EventType)

// Endpoint is one side of a pipe: something bytes can be pulled from
// and pushed to, with edge-triggered readiness flags the pipe toggles
// to implement backpressure. Grounded on hearthy.proxy.pipe.TcpEndpoint.
type Endpoint interface {
	// Pull reads as much as is available into buf, returning the
	// number of bytes appended.
	Pull(buf *frame.RingBuffer) (int, error)
	// Push writes buf's unconsumed bytes out, consuming what was
	// actually sent and returning that count.
	Push(buf *frame.RingBuffer) (int, error)
	// WantPull/WantPush toggle whether the endpoint should report
	// EventMayPull/EventMayPush when it next becomes ready.
	WantPull(want bool)
	WantPush(want bool)
	Closed() bool
	Close(reason string)
	SetCallback(cb Callback)
}
