// Package tcpendpoint adapts pipe.Endpoint onto real net.Conn sockets.
// Where the original implementation multiplexed sockets through a
// single asyncore reactor loop, each Endpoint here owns a small reader
// goroutine that performs blocking reads and hands completed chunks to
// a shared per-connection-pair event channel; a single event-loop
// goroutine (one per accepted client, grounded on
// server.Server.handleConn's one-goroutine-per-connection shape) drains
// that channel and is the only goroutine ever allowed to call into
// pipe.Callback, preserving the cooperative, single-threaded contract
// pipe.SimplePipe and pipe.InterceptPipe are built on.
package tcpendpoint

import (
	"io"
	"net"
	"sync/atomic"

	"github.com/hearthy-oss/hearthproxy/frame"
	"github.com/hearthy-oss/hearthproxy/pipe"
)

const readChunkSize = 4096

type event struct {
	ep  *Endpoint
	typ pipe.EventType
}

// Endpoint wraps one net.Conn as a pipe.Endpoint. Create it with
// newEndpoint; callers outside this package receive endpoints through
// the Wiring passed to Run.
type Endpoint struct {
	conn   net.Conn
	name   string
	events chan<- event

	cb pipe.Callback

	chunks  chan []byte
	pending []byte // leftover from the last chunk; touched only by the event-loop goroutine via Pull

	closed   atomic.Bool
	wantPull bool
	wantPush bool
}

func newEndpoint(conn net.Conn, name string, events chan<- event) *Endpoint {
	e := &Endpoint{
		conn:   conn,
		name:   name,
		events: events,
		chunks: make(chan []byte, 8),
	}
	go e.readLoop()
	return e
}

func (e *Endpoint) readLoop() {
	buf := make([]byte, readChunkSize)
	for {
		n, err := e.conn.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			e.chunks <- chunk
			e.events <- event{ep: e, typ: pipe.EventMayPull}
		}
		if err != nil {
			if err != io.EOF {
				e.Close(err.Error())
			} else {
				e.Close("connection closed by peer")
			}
			return
		}
	}
}

// Pull implements pipe.Endpoint.
func (e *Endpoint) Pull(buf *frame.RingBuffer) (int, error) {
	total := 0
	for {
		if len(e.pending) == 0 {
			select {
			case chunk, ok := <-e.chunks:
				if !ok {
					return total, nil
				}
				e.pending = chunk
			default:
				return total, nil
			}
		}
		free := buf.Free()
		if free == 0 {
			return total, nil
		}
		n := len(e.pending)
		if n > free {
			n = free
		}
		if err := buf.Append(e.pending[:n]); err != nil {
			return total, err
		}
		total += n
		e.pending = e.pending[n:]
	}
}

// Push implements pipe.Endpoint. Writes happen synchronously on the
// event-loop goroutine; a slow remote peer stalls this connection's
// loop, a deliberate simplification over full asynchronous writev
// polling.
func (e *Endpoint) Push(buf *frame.RingBuffer) (int, error) {
	n := buf.Used()
	if n == 0 {
		return 0, nil
	}
	data := buf.Peek(n, 0)
	sent, err := e.conn.Write(data)
	buf.Consume(sent)
	return sent, err
}

// WantPull implements pipe.Endpoint.
func (e *Endpoint) WantPull(want bool) { e.wantPull = want }

// WantPush implements pipe.Endpoint. Since there is no OS-level
// writability signal plumbed through here, asking to push immediately
// attempts one — this method is only ever called from the event-loop
// goroutine (inside a pipe.Callback), so the synchronous, reentrant
// call back into cb is safe.
func (e *Endpoint) WantPush(want bool) {
	e.wantPush = want
	if want && e.cb != nil && !e.Closed() {
		e.cb(e, pipe.EventMayPush)
	}
}

// Closed implements pipe.Endpoint.
func (e *Endpoint) Closed() bool { return e.closed.Load() }

// Close implements pipe.Endpoint. Safe to call from any goroutine;
// the EventClosed dispatch to cb is routed through the shared events
// channel so it still only ever fires on the event-loop goroutine.
func (e *Endpoint) Close(reason string) {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	e.conn.Close()
	e.events <- event{ep: e, typ: pipe.EventClosed}
}

// SetCallback implements pipe.Endpoint.
func (e *Endpoint) SetCallback(cb pipe.Callback) { e.cb = cb }
