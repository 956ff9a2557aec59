package pipe

import "github.com/hearthy-oss/hearthproxy/frame"

// fakeEndpoint is an in-memory Endpoint: Pull drains a preloaded byte
// queue, Push appends to a byte slice the test can inspect. It does
// not itself decide when to fire callbacks; tests call deliverPull and
// deliverPush explicitly, matching the way a real transport's readiness events
// are delivered asynchronously.
type fakeEndpoint struct {
	name     string
	inbound  [][]byte
	outbound []byte
	cb       Callback
	closed   bool
	closeMsg string
	wantPull bool
	wantPush bool
	pushErr  error
}

func newFakeEndpoint(name string) *fakeEndpoint {
	return &fakeEndpoint{name: name}
}

func (e *fakeEndpoint) queue(data []byte) {
	e.inbound = append(e.inbound, data)
}

func (e *fakeEndpoint) Pull(buf *frame.RingBuffer) (int, error) {
	if len(e.inbound) == 0 {
		return 0, nil
	}
	chunk := e.inbound[0]
	e.inbound = e.inbound[1:]
	if err := buf.Append(chunk); err != nil {
		return 0, err
	}
	return len(chunk), nil
}

func (e *fakeEndpoint) Push(buf *frame.RingBuffer) (int, error) {
	if e.pushErr != nil {
		return 0, e.pushErr
	}
	n := buf.Used()
	if n == 0 {
		return 0, nil
	}
	data := buf.Peek(n, 0)
	e.outbound = append(e.outbound, data...)
	buf.Consume(n)
	return n, nil
}

func (e *fakeEndpoint) WantPull(want bool) { e.wantPull = want }
func (e *fakeEndpoint) WantPush(want bool) { e.wantPush = want }
func (e *fakeEndpoint) Closed() bool       { return e.closed }
func (e *fakeEndpoint) Close(reason string) {
	if e.closed {
		return
	}
	e.closed = true
	e.closeMsg = reason
	if e.cb != nil {
		e.cb(e, EventClosed)
	}
}
func (e *fakeEndpoint) SetCallback(cb Callback) { e.cb = cb }

// deliverPull simulates the transport reporting "may pull" for e,
// queuing data first via e.queue.
func (e *fakeEndpoint) deliverPull() {
	e.cb(e, EventMayPull)
}

func (e *fakeEndpoint) deliverPush() {
	e.cb(e, EventMayPush)
}
