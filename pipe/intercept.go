package pipe

import (
	"go.uber.org/zap"

	"github.com/hearthy-oss/hearthproxy/frame"
	"github.com/hearthy-oss/hearthproxy/messages"
	"github.com/hearthy-oss/hearthproxy/schema"
)

// Mode is the interception pipe's current state. It starts Lurking,
// moves to Intercept once the first segment on either side decodes as
// an AuroraHandshake, and otherwise falls to Passive — which is
// terminal: the pipe never automatically returns to Lurking or
// Intercept from Passive.
type Mode int

const (
	ModeLurking Mode = iota
	ModeIntercept
	ModePassive
)

func (m Mode) String() string {
	switch m {
	case ModeLurking:
		return "lurking"
	case ModeIntercept:
		return "intercept"
	case ModePassive:
		return "passive"
	default:
		return "unknown"
	}
}

// Action is a handler's verdict on one decoded packet while
// intercepting.
type Action int

const (
	Reject Action = iota
	Accept
)

// Handler observes and filters decoded Aurora packets once a session
// has been identified as an Aurora connection. Grounded on
// hearthy.proxy.intercept.InterceptHandler.
type Handler interface {
	// OnStartIntercept fires exactly once, with the AuroraHandshake
	// packet that triggered the mode switch to Intercept.
	OnStartIntercept(first *schema.MessageValue)
	// OnPacket is called for every subsequent packet on either
	// direction (epid identifies which endpoint it came from). Reject
	// drops the packet; Accept re-encodes and forwards it.
	OnPacket(epid int, packet *schema.MessageValue) Action
}

// InterceptPipe is a SimplePipe that additionally splits each
// direction's byte stream into Aurora packets once it decides the
// connection is worth decoding, filtering and/or observing them
// through a Handler. Grounded on hearthy.proxy.intercept.InterceptPipe.
type InterceptPipe struct {
	pipe      *SimplePipe
	splitters [2]*frame.AuroraSplitter
	mode      Mode
	handler   Handler
	logger    *zap.Logger
}

// NewInterceptPipe wires a and b together through an InterceptPipe
// starting in Lurking mode.
func NewInterceptPipe(a, b Endpoint, handler Handler, logger *zap.Logger) *InterceptPipe {
	ip := &InterceptPipe{
		splitters: [2]*frame.AuroraSplitter{
			frame.NewAuroraSplitter(frame.DefaultAuroraCapacity),
			frame.NewAuroraSplitter(frame.DefaultAuroraCapacity),
		},
		mode:    ModeLurking,
		handler: handler,
		logger:  logger,
	}
	ip.pipe = NewSimplePipe(a, b, DefaultBufSize, ip.onPull, nil)
	return ip
}

// Mode reports the pipe's current state.
func (ip *InterceptPipe) Mode() Mode { return ip.mode }

// Close tears down both underlying endpoints, flushing what it can of
// each direction's buffered bytes first.
func (ip *InterceptPipe) Close() error { return ip.pipe.Close() }

func (ip *InterceptPipe) onPull(epid int, buf *frame.RingBuffer, nBytes int) {
	if nBytes == 0 {
		return
	}
	switch ip.mode {
	case ModeIntercept:
		ip.onPullIntercept(epid, buf, nBytes)
	case ModeLurking:
		ip.onPullLurking(epid, buf, nBytes)
	}
	// Passive: the raw bytes already sit in buf, ready for SimplePipe
	// to forward unchanged.
}

// onPullLurking feeds newly pulled bytes to this direction's splitter
// looking for the very first segment. A truncated/malformed decode, a
// first segment that isn't an AuroraHandshake, or a buffer overrun all
// demote permanently to Passive — only a clean AuroraHandshake moves
// to Intercept.
func (ip *InterceptPipe) onPullLurking(epid int, buf *frame.RingBuffer, nBytes int) {
	splitter := ip.splitters[epid]
	if err := splitter.Feed(buf.Last(nBytes)); err != nil {
		ip.logger.Warn("buffer full while lurking, falling back to passive forwarding",
			zap.Int("epid", epid), zap.Error(err))
		ip.mode = ModePassive
		return
	}

	segment, ok := splitter.PullSegment()
	if !ok {
		return
	}
	// Bytes belonging to whatever segment(s) follow the first one are
	// still sitting in the splitter; remaining counts them so they can
	// be handed to onPullIntercept as if freshly pulled.
	remaining := splitter.Used()
	splitter.Clear()

	decoded, err := messages.DecodePacket(messages.PacketType(segment.Type), segment.Body)
	if err != nil {
		ip.logger.Warn("could not decode first packet, falling back to passive forwarding", zap.Error(err))
		ip.mode = ModePassive
		return
	}
	if decoded.Type.Name != "AuroraHandshake" {
		ip.logger.Warn("first packet was not an aurora handshake, falling back to passive forwarding",
			zap.String("type", decoded.Type.Name))
		ip.mode = ModePassive
		return
	}

	ip.mode = ModeIntercept
	ip.handler.OnStartIntercept(decoded)
	ip.onPullIntercept(epid, buf, remaining)
}

// onPullIntercept steals the newly pulled bytes out of buf (so raw
// bytes are never forwarded once intercepting), splits them into
// whole packets, and re-appends to buf only the ones the handler
// accepts, re-encoded.
func (ip *InterceptPipe) onPullIntercept(epid int, buf *frame.RingBuffer, nBytes int) {
	splitter := ip.splitters[epid]
	if nBytes > 0 {
		if err := splitter.Feed(buf.Last(nBytes)); err != nil {
			ip.logger.Warn("buffer full while intercepting, falling back to passive forwarding",
				zap.Int("epid", epid), zap.Error(err))
			ip.mode = ModePassive
			return
		}
		buf.Retract(nBytes)
	}

	for {
		segment, ok := splitter.PullSegment()
		if !ok {
			break
		}

		decoded, err := messages.DecodePacket(messages.PacketType(segment.Type), segment.Body)
		if err != nil {
			ip.logger.Warn("could not decode packet, falling back to passive forwarding", zap.Error(err))
			ip.mode = ModePassive
			// This segment and the bytes still buffered after it were
			// already stolen out of buf; hand them back raw so
			// nothing is lost now that we stop decoding.
			buf.Append(frame.EncodeAuroraFrame(segment.Type, segment.Body))
			buf.Append(splitter.Drain())
			return
		}

		if ip.handler.OnPacket(epid, decoded) != Accept {
			continue
		}

		packetType, body, err := messages.EncodePacket(decoded)
		if err != nil {
			ip.logger.Warn("could not re-encode accepted packet, falling back to passive forwarding", zap.Error(err))
			ip.mode = ModePassive
			buf.Append(splitter.Drain())
			return
		}
		buf.Append(frame.EncodeAuroraFrame(uint32(packetType), body))
	}
}
