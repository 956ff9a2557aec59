package frame

import (
	"encoding/binary"

	"github.com/hearthy-oss/hearthproxy/herr"
	"github.com/hearthy-oss/hearthproxy/messages"
	"github.com/hearthy-oss/hearthproxy/schema"
)

// DefaultEnvelopeCapacity is the RPC envelope splitter's default buffer
// capacity. The source did not bound this explicitly (SimpleBuf's
// default of 64 KiB), which we keep as the default here too.
const DefaultEnvelopeCapacity = 64 * 1024

// EnvelopeFrame is one decoded (header, body) pair from the Bnet RPC
// envelope: [header_len u16 BE][header][body of header.Size bytes].
type EnvelopeFrame struct {
	Header *schema.MessageValue
	Body   []byte

	// wireLen is the total number of buffered bytes this frame spans
	// (2 + header_len + body_len), recorded at peek time so
	// PullSegment advances past exactly what PeekSegment inspected
	// without re-encoding the header to recover its length.
	wireLen int
}

// EnvelopeSplitter turns a fed byte stream into whole RPC envelope
// frames. Grounded on hearthy.bnet.decode.SplitterBuf.
type EnvelopeSplitter struct {
	buf        *RingBuffer
	headerType *schema.MessageType
}

// NewEnvelopeSplitter creates a splitter with the given buffer
// capacity.
func NewEnvelopeSplitter(capacity int) (*EnvelopeSplitter, error) {
	headerType, ok := messages.Registry.Lookup("BnetPacketHeader")
	if !ok {
		return nil, herr.New(herr.Malformed, "BnetPacketHeader not registered")
	}
	return &EnvelopeSplitter{buf: NewRingBuffer(capacity), headerType: headerType}, nil
}

// Feed appends newly received bytes to the splitter's buffer.
func (s *EnvelopeSplitter) Feed(data []byte) error {
	return s.buf.Append(data)
}

// PeekSegment reports whether a complete frame is available without
// consuming it. A malformed header is a hard error, not simply "not
// enough data yet": it is returned to the caller and the malformed
// bytes stay buffered.
func (s *EnvelopeSplitter) PeekSegment() (EnvelopeFrame, bool, error) {
	used := s.buf.Used()
	if used < 2 {
		return EnvelopeFrame{}, false, nil
	}
	lenBytes := s.buf.Peek(2, 0)
	headerLen := int(binary.BigEndian.Uint16(lenBytes))
	if used < 2+headerLen {
		return EnvelopeFrame{}, false, nil
	}
	headerBytes := s.buf.Peek(headerLen, 2)
	header, err := schema.Decode(s.headerType, headerBytes)
	if err != nil {
		return EnvelopeFrame{}, false, err
	}
	sizeVal, ok := header.Get("Size")
	var size uint64
	if ok {
		size = sizeVal.(uint64)
	}
	total := 2 + headerLen + int(size)
	if used < total {
		return EnvelopeFrame{}, false, nil
	}
	body := s.buf.Peek(int(size), 2+headerLen)
	return EnvelopeFrame{Header: header, Body: body, wireLen: total}, true, nil
}

// PullSegment returns the next complete frame, if any, and advances
// past it.
func (s *EnvelopeSplitter) PullSegment() (EnvelopeFrame, bool, error) {
	frame, ok, err := s.PeekSegment()
	if err != nil || !ok {
		return EnvelopeFrame{}, false, err
	}
	s.buf.Consume(frame.wireLen)
	return frame, true, nil
}

// Clear discards all buffered bytes.
func (s *EnvelopeSplitter) Clear() { s.buf.Clear() }

// EncodeEnvelopeFrame writes an RPC envelope for (header, body).
// header.Size is expected to already equal len(body); the broker
// package sets it before calling this.
func EncodeEnvelopeFrame(header *schema.MessageValue, body []byte) ([]byte, error) {
	headerBytes, err := schema.Encode(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 2+len(headerBytes)+len(body))
	binary.BigEndian.PutUint16(out[0:2], uint16(len(headerBytes)))
	copy(out[2:], headerBytes)
	copy(out[2+len(headerBytes):], body)
	return out, nil
}
