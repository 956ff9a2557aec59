package wire

import "encoding/binary"

// The functions below are growable-slice conveniences built on top of the
// offset-based primitives above (which match spec.md's
// read_varint/write_varint signatures exactly). Message encoding in
// package schema builds up a message's wire bytes by appending, rather
// than reserving a fixed scratch buffer and memmove-ing the payload back
// after measuring it the way hearthy.protocol.mstruct.MStruct.encode_buf
// does — recursion plus append gives the same bytes without the manual
// two-pass bookkeeping.

// AppendVarint appends val's varint encoding to buf.
func AppendVarint(buf []byte, val uint64) []byte {
	var tmp [maxVarintBytes]byte
	n := WriteVarint(val, tmp[:], 0)
	return append(buf, tmp[:n]...)
}

// AppendTag appends a single field tag byte.
func AppendTag(buf []byte, fieldNumber uint32, wt WireType) []byte {
	return append(buf, byte(fieldNumber<<3)|byte(wt))
}

// AppendLenDelim appends a wire-type-2 field: tag, varint length, payload.
func AppendLenDelim(buf []byte, fieldNumber uint32, payload []byte) []byte {
	buf = AppendTag(buf, fieldNumber, WireLenDelim)
	buf = AppendVarint(buf, uint64(len(payload)))
	return append(buf, payload...)
}

// AppendVarintField appends a wire-type-0 field.
func AppendVarintField(buf []byte, fieldNumber uint32, val uint64) []byte {
	buf = AppendTag(buf, fieldNumber, WireVarint)
	return AppendVarint(buf, val)
}

// AppendFixed32Field appends a wire-type-5 field.
func AppendFixed32Field(buf []byte, fieldNumber uint32, val uint32) []byte {
	buf = AppendTag(buf, fieldNumber, WireFixed32)
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], val)
	return append(buf, tmp[:]...)
}

// AppendFixed64Field appends a wire-type-1 field.
func AppendFixed64Field(buf []byte, fieldNumber uint32, val uint64) []byte {
	buf = AppendTag(buf, fieldNumber, WireFixed64)
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], val)
	return append(buf, tmp[:]...)
}

// AppendPackedVarint appends a packed wire-type-2 varint array field.
func AppendPackedVarint(buf []byte, fieldNumber uint32, vals []uint64) []byte {
	var payload []byte
	for _, v := range vals {
		payload = AppendVarint(payload, v)
	}
	return AppendLenDelim(buf, fieldNumber, payload)
}

// AppendPackedFixed32 appends a packed wire-type-2 fixed32 array field.
func AppendPackedFixed32(buf []byte, fieldNumber uint32, vals []uint32) []byte {
	payload := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(payload[i*4:], v)
	}
	return AppendLenDelim(buf, fieldNumber, payload)
}

// AppendPackedFixed64 appends a packed wire-type-2 fixed64 array field.
func AppendPackedFixed64(buf []byte, fieldNumber uint32, vals []uint64) []byte {
	payload := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(payload[i*8:], v)
	}
	return AppendLenDelim(buf, fieldNumber, payload)
}

// DecodePackedFixed32 splits a packed fixed32 payload into its elements.
func DecodePackedFixed32(payload []byte) []uint32 {
	out := make([]uint32, len(payload)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(payload[i*4:])
	}
	return out
}

// DecodePackedFixed64 splits a packed fixed64 payload into its elements.
func DecodePackedFixed64(payload []byte) []uint64 {
	out := make([]uint64, len(payload)/8)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(payload[i*8:])
	}
	return out
}
