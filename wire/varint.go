// Package wire implements the protobuf-shaped varint and field codec
// that underlies both the Aurora and Bnet envelopes.
//
// Reference: https://developers.google.com/protocol-buffers/docs/encoding
//
// This mirrors hearthy.protocol.serialize byte-for-byte: varints are at
// most 10 bytes, a negative value is always written as the full 10-byte
// two's-complement form, and packed scalars are just concatenated
// varints with no inter-element framing.
package wire

import "github.com/hearthy-oss/hearthproxy/herr"

const maxVarintBytes = 10

// ReadVarint decodes a single varint from buf starting at offset and
// returns its raw 64-bit pattern plus the offset just past it. The
// result is always masked to 64 bits, matching write_varint's masking
// on encode; a value written from a negative int64 comes back out as
// the same bit pattern, which callers reinterpret with int64(v) when
// the field is signed. signed is accepted (and ignored computationally)
// only to mirror hearthy.protocol.serialize.read_varint's signature —
// the two's-complement reinterpretation it performs is a no-op once the
// result is already truncated to a fixed 64-bit word, which Go's uint64
// arithmetic does implicitly.
func ReadVarint(buf []byte, offset int, signed bool) (uint64, int, error) {
	var result uint64
	var shift uint
	pos := offset
	for {
		if pos >= len(buf) {
			return 0, pos, herr.New(herr.Malformed, "varint runs past end of buffer")
		}
		b := buf[pos]
		pos++
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, pos, nil
		}
		shift += 7
		if shift >= 64 {
			return 0, pos, herr.New(herr.Malformed, "not a valid varint")
		}
	}
}

// WriteVarint appends val (as a 64-bit pattern) to buf at offset using
// varint encoding, masking to 64 bits first. A negative value therefore
// always consumes the full 10 bytes.
func WriteVarint(val uint64, buf []byte, offset int) int {
	pos := offset
	for {
		b := byte(val & 0x7f)
		val >>= 7
		if val == 0 {
			buf[pos] = b
			return pos + 1
		}
		buf[pos] = b | 0x80
		pos++
	}
}

// VarintLen returns the number of bytes WriteVarint would emit for val.
func VarintLen(val uint64) int {
	n := 1
	for val >>= 7; val != 0; val >>= 7 {
		n++
	}
	return n
}

// ReadPackedVarint decodes a maximal run of varints in buf[offset:end],
// failing with Misaligned if the last varint overruns end.
func ReadPackedVarint(buf []byte, offset, end int, signed bool) ([]uint64, error) {
	var out []uint64
	pos := offset
	for pos < end {
		v, next, err := ReadVarint(buf, pos, signed)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		pos = next
	}
	if pos != end {
		return nil, herr.New(herr.Misaligned, "packed varint block did not end at declared boundary")
	}
	return out, nil
}

// WritePackedVarint writes each element of seq as a concatenated varint,
// with no inter-element framing, returning the new offset.
func WritePackedVarint(seq []uint64, buf []byte, offset int) int {
	for _, v := range seq {
		offset = WriteVarint(v, buf, offset)
	}
	return offset
}
