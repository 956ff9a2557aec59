package wire

import (
	"encoding/binary"
	"math"

	"github.com/hearthy-oss/hearthproxy/herr"
)

// WireType identifies how a field's payload is framed on the wire.
type WireType byte

const (
	WireVarint   WireType = 0
	WireFixed64  WireType = 1
	WireLenDelim WireType = 2
	WireFixed32  WireType = 5
)

// Field is a decoded (field_number, wire_type, payload) triple. Varint
// holds the raw varint value for WireVarint, Fixed the value read from
// the little-endian bytes for WireFixed32/WireFixed64, and Bytes the
// copied slice for WireLenDelim.
type Field struct {
	Number   uint32
	WireType WireType
	Varint   uint64
	Fixed    uint64
	Bytes    []byte
}

// ReadField reads a single tagged field starting at offset: a 1-byte tag
// (field_number = tag>>3, wire_type = tag&7), followed by a
// wire-type-specific payload. Wire types other than the four declared
// in the wire format are a hard UnsupportedWireType error.
func ReadField(buf []byte, offset int) (Field, int, error) {
	if offset >= len(buf) {
		return Field{}, offset, herr.New(herr.Malformed, "tag byte runs past end of buffer")
	}
	tag := buf[offset]
	fieldNumber := uint32(tag >> 3)
	wt := WireType(tag & 7)
	pos := offset + 1

	switch wt {
	case WireVarint:
		v, next, err := ReadVarint(buf, pos, true)
		if err != nil {
			return Field{}, pos, err
		}
		return Field{Number: fieldNumber, WireType: wt, Varint: v}, next, nil
	case WireLenDelim:
		length, next, err := ReadVarint(buf, pos, false)
		if err != nil {
			return Field{}, pos, err
		}
		end := next + int(length)
		if end > len(buf) || end < next {
			return Field{}, pos, herr.New(herr.Malformed, "length-delimited field runs past end of buffer")
		}
		payload := make([]byte, length)
		copy(payload, buf[next:end])
		return Field{Number: fieldNumber, WireType: wt, Bytes: payload}, end, nil
	case WireFixed64:
		if pos+8 > len(buf) {
			return Field{}, pos, herr.New(herr.Malformed, "fixed64 field runs past end of buffer")
		}
		v := binary.LittleEndian.Uint64(buf[pos : pos+8])
		return Field{Number: fieldNumber, WireType: wt, Fixed: v}, pos + 8, nil
	case WireFixed32:
		if pos+4 > len(buf) {
			return Field{}, pos, herr.New(herr.Malformed, "fixed32 field runs past end of buffer")
		}
		v := binary.LittleEndian.Uint32(buf[pos : pos+4])
		return Field{Number: fieldNumber, WireType: wt, Fixed: uint64(v)}, pos + 4, nil
	default:
		return Field{}, pos, herr.New(herr.UnsupportedWireType, "unsupported wire type %d on field %d", wt, fieldNumber)
	}
}

// WriteTag appends the 1-byte (field_number, wire_type) tag.
func WriteTag(fieldNumber uint32, wt WireType, buf []byte, offset int) int {
	buf[offset] = byte(fieldNumber<<3) | byte(wt)
	return offset + 1
}

// WriteLenDelimField writes a length-delimited field's tag, varint length
// prefix, and payload.
func WriteLenDelimField(fieldNumber uint32, payload []byte, buf []byte, offset int) int {
	offset = WriteTag(fieldNumber, WireLenDelim, buf, offset)
	offset = WriteVarint(uint64(len(payload)), buf, offset)
	n := copy(buf[offset:], payload)
	return offset + n
}

// WriteVarintField writes a tag plus a single varint value.
func WriteVarintField(fieldNumber uint32, val uint64, buf []byte, offset int) int {
	offset = WriteTag(fieldNumber, WireVarint, buf, offset)
	return WriteVarint(val, buf, offset)
}

// WriteFixed32Field writes a tag plus 4 little-endian bytes.
func WriteFixed32Field(fieldNumber uint32, val uint32, buf []byte, offset int) int {
	offset = WriteTag(fieldNumber, WireFixed32, buf, offset)
	binary.LittleEndian.PutUint32(buf[offset:], val)
	return offset + 4
}

// WriteFixed64Field writes a tag plus 8 little-endian bytes.
func WriteFixed64Field(fieldNumber uint32, val uint64, buf []byte, offset int) int {
	offset = WriteTag(fieldNumber, WireFixed64, buf, offset)
	binary.LittleEndian.PutUint64(buf[offset:], val)
	return offset + 8
}

// Float32Bits and Float64Bits convert floats to/from their fixed-width
// wire representation, used by MBasicFixed-equivalent float fields.
func Float32Bits(f float32) uint32    { return math.Float32bits(f) }
func BitsToFloat32(b uint32) float32  { return math.Float32frombits(b) }
func Float64Bits(f float64) uint64    { return math.Float64bits(f) }
func BitsToFloat64(b uint64) float64  { return math.Float64frombits(b) }
