// Package capture reads the HCaptureV0 recording format: a magic
// header followed by a stream of per-connection events (new
// connection, data, close), grounded on
// hearthy/datasource/hcapng.py:parse (the magic-prefixed revision of
// hearthy/datasource/hcapture.py:read_splitter_file).
package capture

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the fixed 11-byte header every capture file starts with.
var Magic = [11]byte{'H', 'C', 'a', 'p', 't', 'u', 'r', 'e', 'V', '0', 0}

// EventType identifies the kind of event following a capture frame's
// prefix.
type EventType uint8

const (
	EventNewConnection EventType = 0
	EventClose         EventType = 1
	EventData          EventType = 2
)

const prefixLen = 13 // evlen(4) + evtime(8) + evtype(1)

// maxEventLen guards against a corrupt or truncated file claiming an
// absurd event size, mirroring hcapng.py's MAX_EVLEN sanity check.
const maxEventLen = 16 * 1024

// Header is the capture file's fixed preamble.
type Header struct {
	Timestamp int64 // unix seconds the recording started
}

// NewConnection is an EventNewConnection event's body.
type NewConnection struct {
	StreamID   uint32
	SourceIP   uint32
	SourcePort uint16
	DestIP     uint32
	DestPort   uint16
}

// Data is an EventData event's body. Who distinguishes the two
// directions of one stream (0 or 1), matching EvData.who.
type Data struct {
	StreamID uint32
	Who      uint8
	Payload  []byte
}

// Close is an EventClose event's body.
type Close struct {
	StreamID uint32
}

// Event is one decoded capture record: exactly one of NewConn, Data,
// or CloseEv is set, selected by Type. Time is the event's recorded
// timestamp (capture-relative, not wall-clock).
type Event struct {
	Type     EventType
	Time     int64
	NewConn  *NewConnection
	Data     *Data
	CloseEv  *Close
}

// Reader parses a capture stream. Construct with NewReader, which
// reads and validates the header immediately.
type Reader struct {
	r      io.Reader
	Header Header
}

// NewReader reads and validates r's HCaptureV0 header.
func NewReader(r io.Reader) (*Reader, error) {
	var magic [11]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("capture: reading magic: %w", err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("capture: bad magic %q", magic)
	}
	var tsBuf [8]byte
	if _, err := io.ReadFull(r, tsBuf[:]); err != nil {
		return nil, fmt.Errorf("capture: reading header timestamp: %w", err)
	}
	ts := int64(binary.LittleEndian.Uint64(tsBuf[:]))
	return &Reader{r: r, Header: Header{Timestamp: ts}}, nil
}

// Next reads the next event, or io.EOF once the stream is exhausted
// cleanly.
func (r *Reader) Next() (Event, error) {
	var prefix [prefixLen]byte
	if _, err := io.ReadFull(r.r, prefix[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Event{}, fmt.Errorf("capture: truncated event prefix")
		}
		return Event{}, err
	}
	evLen := binary.LittleEndian.Uint32(prefix[0:4])
	evTime := int64(binary.LittleEndian.Uint64(prefix[4:12]))
	evType := EventType(prefix[12])

	if evLen > maxEventLen {
		return Event{}, fmt.Errorf("capture: event length %d exceeds maximum of %d", evLen, maxEventLen)
	}
	if int(evLen) < prefixLen {
		return Event{}, fmt.Errorf("capture: event length %d smaller than prefix", evLen)
	}

	body := make([]byte, int(evLen)-prefixLen)
	if _, err := io.ReadFull(r.r, body); err != nil {
		return Event{}, fmt.Errorf("capture: reading event body: %w", err)
	}

	ev := Event{Type: evType, Time: evTime}
	switch evType {
	case EventNewConnection:
		nc, err := decodeNewConnection(body)
		if err != nil {
			return Event{}, err
		}
		ev.NewConn = &nc
	case EventData:
		d, err := decodeData(body)
		if err != nil {
			return Event{}, err
		}
		ev.Data = &d
	case EventClose:
		c, err := decodeClose(body)
		if err != nil {
			return Event{}, err
		}
		ev.CloseEv = &c
	default:
		return Event{}, fmt.Errorf("capture: unknown event type 0x%02x", evType)
	}
	return ev, nil
}

func decodeNewConnection(buf []byte) (NewConnection, error) {
	if len(buf) != 16 {
		return NewConnection{}, fmt.Errorf("capture: new-connection event has %d bytes, want 16", len(buf))
	}
	return NewConnection{
		StreamID:   binary.LittleEndian.Uint32(buf[0:4]),
		SourceIP:   binary.LittleEndian.Uint32(buf[4:8]),
		SourcePort: binary.LittleEndian.Uint16(buf[8:10]),
		DestIP:     binary.LittleEndian.Uint32(buf[10:14]),
		DestPort:   binary.LittleEndian.Uint16(buf[14:16]),
	}, nil
}

func decodeData(buf []byte) (Data, error) {
	if len(buf) < 5 {
		return Data{}, fmt.Errorf("capture: data event has %d bytes, want at least 5", len(buf))
	}
	payload := make([]byte, len(buf)-5)
	copy(payload, buf[5:])
	return Data{
		StreamID: binary.LittleEndian.Uint32(buf[0:4]),
		Who:      buf[4],
		Payload:  payload,
	}, nil
}

func decodeClose(buf []byte) (Close, error) {
	if len(buf) != 4 {
		return Close{}, fmt.Errorf("capture: close event has %d bytes, want 4", len(buf))
	}
	return Close{StreamID: binary.LittleEndian.Uint32(buf[0:4])}, nil
}

// FormatIPv4 renders a native-byte-order packed IPv4 address the way
// EvNewConnection.source/dest display it.
func FormatIPv4(ip uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", ip&0xff, (ip>>8)&0xff, (ip>>16)&0xff, (ip>>24)&0xff)
}
