package frame

import "encoding/binary"

// DefaultAuroraCapacity is the Aurora splitter's default buffer
// capacity, matching the source's 16 * 1024 encode/intercept buffer
// sizing for in-game packets.
const DefaultAuroraCapacity = 16 * 1024

// AuroraFrame is one decoded (type, body) pair from the Aurora
// envelope: [packet_type u32 LE][body_len u32 LE][body].
type AuroraFrame struct {
	Type uint32
	Body []byte
}

// AuroraSplitter turns a fed byte stream into whole Aurora frames.
// Grounded on hearthy.proxy.intercept.SplitterBuf.
type AuroraSplitter struct {
	buf *RingBuffer
}

// NewAuroraSplitter creates a splitter with the given buffer capacity.
func NewAuroraSplitter(capacity int) *AuroraSplitter {
	return &AuroraSplitter{buf: NewRingBuffer(capacity)}
}

// Feed appends newly received bytes to the splitter's buffer. Fails
// with BufferFull if the buffer cannot hold them, in which case the
// caller (the pipe) demotes to Passive mode rather than retrying.
func (s *AuroraSplitter) Feed(data []byte) error {
	return s.buf.Append(data)
}

// PeekSegment reports whether a complete frame is available without
// consuming it.
func (s *AuroraSplitter) PeekSegment() (AuroraFrame, bool) {
	used := s.buf.Used()
	if used < 8 {
		return AuroraFrame{}, false
	}
	header := s.buf.Peek(8, 0)
	packetType := binary.LittleEndian.Uint32(header[0:4])
	bodyLen := binary.LittleEndian.Uint32(header[4:8])
	if used < int(bodyLen)+8 {
		return AuroraFrame{}, false
	}
	body := s.buf.Peek(int(bodyLen), 8)
	return AuroraFrame{Type: packetType, Body: body}, true
}

// PullSegment returns the next complete frame, if any, and advances
// past it.
func (s *AuroraSplitter) PullSegment() (AuroraFrame, bool) {
	frame, ok := s.PeekSegment()
	if !ok {
		return AuroraFrame{}, false
	}
	s.buf.Consume(8 + len(frame.Body))
	return frame, true
}

// Used reports how many bytes are currently buffered and not yet
// consumed by PullSegment.
func (s *AuroraSplitter) Used() int { return s.buf.Used() }

// Clear discards all buffered bytes.
func (s *AuroraSplitter) Clear() { s.buf.Clear() }

// Drain returns a copy of the currently buffered, not-yet-decodable
// bytes and clears the splitter. Used when the pipe abandons decoding
// mid-stream so the undecoded remainder can be handed back for raw
// forwarding instead of being silently lost.
func (s *AuroraSplitter) Drain() []byte {
	n := s.buf.Used()
	out := make([]byte, n)
	copy(out, s.buf.Peek(n, 0))
	s.buf.Clear()
	return out
}

// EncodeAuroraFrame writes an Aurora envelope for (packetType, body).
func EncodeAuroraFrame(packetType uint32, body []byte) []byte {
	out := make([]byte, 8+len(body))
	binary.LittleEndian.PutUint32(out[0:4], packetType)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(body)))
	copy(out[8:], body)
	return out
}
