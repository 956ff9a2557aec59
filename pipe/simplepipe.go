package pipe

import (
	"go.uber.org/multierr"

	"github.com/hearthy-oss/hearthproxy/frame"
)

// DefaultBufSize is the per-direction buffer capacity SimplePipe uses
// when a subclass does not override it, matching SimpleBuf's default.
const DefaultBufSize = 64 * 1024

// PullFunc and PushFunc let a pipe built on SimplePipe observe traffic
// without overriding the dispatch loop itself, the Go equivalent of
// subclassing SimplePipe and overriding _on_pull/_on_push.
type PullFunc func(epid int, buf *frame.RingBuffer, nBytes int)
type PushFunc func(epid int)

// SimplePipe moves bytes between two endpoints, forwarding whatever
// one side produces to the other's send buffer, with backpressure
// applied through WantPull/WantPush. Grounded on
// hearthy.proxy.pipe.SimplePipe.
type SimplePipe struct {
	eps  [2]Endpoint
	bufs [2]*frame.RingBuffer

	onPull PullFunc
	onPush PushFunc
}

// NewSimplePipe wires a and b together, each direction buffered up to
// bufSize bytes, and starts both endpoints wanting to pull.
func NewSimplePipe(a, b Endpoint, bufSize int, onPull PullFunc, onPush PushFunc) *SimplePipe {
	p := &SimplePipe{
		eps:    [2]Endpoint{a, b},
		bufs:   [2]*frame.RingBuffer{frame.NewRingBuffer(bufSize), frame.NewRingBuffer(bufSize)},
		onPull: onPull,
		onPush: onPush,
	}
	a.WantPull(true)
	b.WantPull(true)
	a.SetCallback(p.onEndpointEvent)
	b.SetCallback(p.onEndpointEvent)
	return p
}

// Close tears down both endpoints, making a best-effort attempt to
// flush each direction's still-buffered bytes before closing it. A
// failed flush on one direction does not stop the other from being
// closed; both errors, if any, are returned together.
func (p *SimplePipe) Close() error {
	var err error
	for epid, ep := range p.eps {
		if ep.Closed() {
			continue
		}
		if p.bufs[epid].Used() > 0 {
			if _, pushErr := ep.Push(p.bufs[epid]); pushErr != nil {
				err = multierr.Append(err, pushErr)
			}
		}
		ep.Close("pipe closed")
	}
	return err
}

func (p *SimplePipe) indexOf(ep Endpoint) int {
	if ep == p.eps[0] {
		return 0
	}
	return 1
}

// onEndpointEvent is the pipe's entire dispatch logic. It must be
// reentrant: Pull/Push can synchronously close the opposite endpoint
// and re-enter this function before the outer call returns, since a
// real Endpoint's underlying transport can observe a closed peer
// mid-write.
func (p *SimplePipe) onEndpointEvent(ep Endpoint, ev EventType) {
	epid := p.indexOf(ep)
	opid := 1 - epid
	op := p.eps[opid]

	switch ev {
	case EventMayPush:
		if _, err := ep.Push(p.bufs[epid]); err != nil {
			ep.Close(err.Error())
		}
		if p.onPush != nil {
			p.onPush(epid)
		}
		ep.WantPush(p.bufs[epid].Used() > 0)
		op.WantPull(!ep.Closed() && p.bufs[epid].Free() > 0)
	case EventMayPull:
		n, err := ep.Pull(p.bufs[opid])
		if err != nil {
			ep.Close(err.Error())
		}
		if p.onPull != nil {
			p.onPull(epid, p.bufs[opid], n)
		}
		ep.WantPull(p.bufs[opid].Free() > 0)
		op.WantPush(!ep.Closed() && p.bufs[opid].Used() > 0)
	case EventClosed:
		// Called once per endpoint. Any outstanding data destined for
		// the other side still gets a chance to drain before it closes
		// too.
		if !op.Closed() && p.bufs[opid].Used() == 0 {
			op.Close("remote closed")
		}
	}

	if op.Closed() && !ep.Closed() && p.bufs[epid].Used() == 0 {
		ep.Close("remote closed")
	}
}
