package schema

import (
	"unicode/utf8"

	"github.com/hearthy-oss/hearthproxy/herr"
	"github.com/hearthy-oss/hearthproxy/wire"
)

// Decode parses buf as a complete instance of t. Unlike the offset-based
// wire primitives, Decode always consumes buf in full: a caller handed a
// length-delimited message field's payload (or a whole Aurora packet
// body) slices it down to exactly that range first, so there is never a
// meaningful "stop before the end" case the way there is for a
// top-level RPC envelope stream.
//
// Dispatch is driven by each field's declared Kind, not by whatever wire
// type byte shows up on the tag: a mismatch between the two is a
// BadEncoding error rather than silently reinterpreted, matching
// MStruct.decode_buf's behavior of trusting the field table.
func Decode(t *MessageType, buf []byte) (*MessageValue, error) {
	v := NewValue(t)
	pos := 0
	for pos < len(buf) {
		f, next, err := wire.ReadField(buf, pos)
		if err != nil {
			return nil, err
		}
		pos = next

		fd, ok := t.Fields[f.Number]
		if !ok {
			return nil, herr.New(herr.UnknownField, "%s: unknown field number %d", t.Name, f.Number)
		}

		if err := decodeOneField(v, fd, f); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func decodeOneField(v *MessageValue, fd FieldDef, f wire.Field) error {
	if fd.Repeated {
		return decodeRepeated(v, fd, f)
	}
	if _, present := v.Get(fd.Name); present {
		return herr.New(herr.Duplicated, "field %s set more than once", fd.Name)
	}
	val, err := decodeScalar(fd, f)
	if err != nil {
		return err
	}
	v.Set(fd.Name, val)
	return nil
}

func decodeScalar(fd FieldDef, f wire.Field) (any, error) {
	switch fd.Type.Kind {
	case KindVarint:
		if f.WireType != wire.WireVarint {
			return nil, herr.New(herr.BadEncoding, "field %s: expected varint wire type, got %d", fd.Name, f.WireType)
		}
		if fd.Type.Signed {
			return int64(f.Varint), nil
		}
		return f.Varint, nil
	case KindFixed:
		return decodeFixedScalar(fd, f)
	case KindBytes:
		if f.WireType != wire.WireLenDelim {
			return nil, herr.New(herr.BadEncoding, "field %s: expected length-delimited wire type, got %d", fd.Name, f.WireType)
		}
		return f.Bytes, nil
	case KindString:
		if f.WireType != wire.WireLenDelim {
			return nil, herr.New(herr.BadEncoding, "field %s: expected length-delimited wire type, got %d", fd.Name, f.WireType)
		}
		if !utf8.Valid(f.Bytes) {
			return nil, herr.New(herr.BadEncoding, "field %s: not valid UTF-8", fd.Name)
		}
		return string(f.Bytes), nil
	case KindMessage:
		if f.WireType != wire.WireLenDelim {
			return nil, herr.New(herr.BadEncoding, "field %s: expected length-delimited wire type, got %d", fd.Name, f.WireType)
		}
		return Decode(fd.Type.Message, f.Bytes)
	default:
		return nil, herr.New(herr.Malformed, "field %s: unresolved field type", fd.Name)
	}
}

func decodeFixedScalar(fd FieldDef, f wire.Field) (any, error) {
	if fd.Type.Width == 32 {
		if f.WireType != wire.WireFixed32 {
			return nil, herr.New(herr.BadEncoding, "field %s: expected fixed32 wire type, got %d", fd.Name, f.WireType)
		}
		if fd.Type.Float {
			return wire.BitsToFloat32(uint32(f.Fixed)), nil
		}
		return uint32(f.Fixed), nil
	}
	if f.WireType != wire.WireFixed64 {
		return nil, herr.New(herr.BadEncoding, "field %s: expected fixed64 wire type, got %d", fd.Name, f.WireType)
	}
	if fd.Type.Float {
		return wire.BitsToFloat64(f.Fixed), nil
	}
	return f.Fixed, nil
}

func decodeRepeated(v *MessageValue, fd FieldDef, f wire.Field) error {
	switch fd.Type.Kind {
	case KindVarint:
		// A repeated scalar may arrive either packed (one length-delimited
		// field carrying every element) or as several single-value varint
		// fields sharing the same field number — both are valid protobuf
		// wire shapes for a repeated scalar, and a source encoder is free
		// to pick either, so both must decode.
		if f.WireType == wire.WireVarint {
			if fd.Type.Signed {
				v.Append(fd.Name, int64(f.Varint))
			} else {
				v.Append(fd.Name, f.Varint)
			}
			return nil
		}
		if f.WireType != wire.WireLenDelim {
			return herr.New(herr.BadEncoding, "repeated field %s: expected varint or packed length-delimited wire type, got %d", fd.Name, f.WireType)
		}
		vals, err := wire.ReadPackedVarint(f.Bytes, 0, len(f.Bytes), fd.Type.Signed)
		if err != nil {
			return err
		}
		for _, val := range vals {
			if fd.Type.Signed {
				v.Append(fd.Name, int64(val))
			} else {
				v.Append(fd.Name, val)
			}
		}
		return nil
	case KindFixed:
		// Same packed-or-single-value tolerance as the varint case above.
		if fd.Type.Width == 32 {
			if f.WireType == wire.WireFixed32 {
				bits := uint32(f.Fixed)
				if fd.Type.Float {
					v.Append(fd.Name, wire.BitsToFloat32(bits))
				} else {
					v.Append(fd.Name, bits)
				}
				return nil
			}
			if f.WireType != wire.WireLenDelim {
				return herr.New(herr.BadEncoding, "repeated field %s: expected fixed32 or packed length-delimited wire type, got %d", fd.Name, f.WireType)
			}
			if len(f.Bytes)%4 != 0 {
				return herr.New(herr.Misaligned, "repeated field %s: packed fixed32 payload not a multiple of 4 bytes", fd.Name)
			}
			for _, bits := range wire.DecodePackedFixed32(f.Bytes) {
				if fd.Type.Float {
					v.Append(fd.Name, wire.BitsToFloat32(bits))
				} else {
					v.Append(fd.Name, bits)
				}
			}
			return nil
		}
		if f.WireType == wire.WireFixed64 {
			if fd.Type.Float {
				v.Append(fd.Name, wire.BitsToFloat64(f.Fixed))
			} else {
				v.Append(fd.Name, f.Fixed)
			}
			return nil
		}
		if f.WireType != wire.WireLenDelim {
			return herr.New(herr.BadEncoding, "repeated field %s: expected fixed64 or packed length-delimited wire type, got %d", fd.Name, f.WireType)
		}
		if len(f.Bytes)%8 != 0 {
			return herr.New(herr.Misaligned, "repeated field %s: packed fixed64 payload not a multiple of 8 bytes", fd.Name)
		}
		for _, bits := range wire.DecodePackedFixed64(f.Bytes) {
			if fd.Type.Float {
				v.Append(fd.Name, wire.BitsToFloat64(bits))
			} else {
				v.Append(fd.Name, bits)
			}
		}
		return nil
	case KindBytes:
		if f.WireType != wire.WireLenDelim {
			return herr.New(herr.BadEncoding, "repeated field %s: expected length-delimited wire type, got %d", fd.Name, f.WireType)
		}
		v.Append(fd.Name, f.Bytes)
		return nil
	case KindString:
		if f.WireType != wire.WireLenDelim {
			return herr.New(herr.BadEncoding, "repeated field %s: expected length-delimited wire type, got %d", fd.Name, f.WireType)
		}
		if !utf8.Valid(f.Bytes) {
			return herr.New(herr.BadEncoding, "repeated field %s: not valid UTF-8", fd.Name)
		}
		v.Append(fd.Name, string(f.Bytes))
		return nil
	case KindMessage:
		if f.WireType != wire.WireLenDelim {
			return herr.New(herr.BadEncoding, "repeated field %s: expected length-delimited wire type, got %d", fd.Name, f.WireType)
		}
		sub, err := Decode(fd.Type.Message, f.Bytes)
		if err != nil {
			return err
		}
		v.Append(fd.Name, sub)
		return nil
	default:
		return herr.New(herr.Malformed, "repeated field %s: unresolved field type", fd.Name)
	}
}

// Encode serializes v back to protobuf-shaped bytes, iterating fields in
// declared order and skipping absent non-repeated fields and empty
// repeated fields entirely (there is no "null" wire representation; an
// unset field is simply not written, matching MStruct.encode_buf).
func Encode(v *MessageValue) ([]byte, error) {
	var buf []byte
	t := v.Type
	for _, num := range t.Order {
		fd := t.Fields[num]
		if fd.Repeated {
			elems := v.GetRepeated(fd.Name)
			if len(elems) == 0 {
				continue
			}
			encoded, err := encodeRepeated(fd, elems)
			if err != nil {
				return nil, err
			}
			buf = append(buf, encoded...)
			continue
		}
		val, present := v.Get(fd.Name)
		if !present {
			continue
		}
		encoded, err := encodeScalar(fd, val)
		if err != nil {
			return nil, err
		}
		buf = append(buf, encoded...)
	}
	return buf, nil
}

func encodeScalar(fd FieldDef, val any) ([]byte, error) {
	switch fd.Type.Kind {
	case KindVarint:
		var raw uint64
		if fd.Type.Signed {
			raw = uint64(val.(int64))
		} else {
			raw = val.(uint64)
		}
		return wire.AppendVarintField(nil, fd.Number, raw), nil
	case KindFixed:
		if fd.Type.Width == 32 {
			var bits uint32
			if fd.Type.Float {
				bits = wire.Float32Bits(val.(float32))
			} else {
				bits = val.(uint32)
			}
			return wire.AppendFixed32Field(nil, fd.Number, bits), nil
		}
		var bits uint64
		if fd.Type.Float {
			bits = wire.Float64Bits(val.(float64))
		} else {
			bits = val.(uint64)
		}
		return wire.AppendFixed64Field(nil, fd.Number, bits), nil
	case KindBytes:
		return wire.AppendLenDelim(nil, fd.Number, val.([]byte)), nil
	case KindString:
		return wire.AppendLenDelim(nil, fd.Number, []byte(val.(string))), nil
	case KindMessage:
		sub, err := Encode(val.(*MessageValue))
		if err != nil {
			return nil, err
		}
		return wire.AppendLenDelim(nil, fd.Number, sub), nil
	default:
		return nil, herr.New(herr.Malformed, "field %s: unresolved field type", fd.Name)
	}
}

func encodeRepeated(fd FieldDef, elems []any) ([]byte, error) {
	switch fd.Type.Kind {
	case KindVarint:
		vals := make([]uint64, len(elems))
		for i, e := range elems {
			if fd.Type.Signed {
				vals[i] = uint64(e.(int64))
			} else {
				vals[i] = e.(uint64)
			}
		}
		return wire.AppendPackedVarint(nil, fd.Number, vals), nil
	case KindFixed:
		if fd.Type.Width == 32 {
			vals := make([]uint32, len(elems))
			for i, e := range elems {
				if fd.Type.Float {
					vals[i] = wire.Float32Bits(e.(float32))
				} else {
					vals[i] = e.(uint32)
				}
			}
			return wire.AppendPackedFixed32(nil, fd.Number, vals), nil
		}
		vals := make([]uint64, len(elems))
		for i, e := range elems {
			if fd.Type.Float {
				vals[i] = wire.Float64Bits(e.(float64))
			} else {
				vals[i] = e.(uint64)
			}
		}
		return wire.AppendPackedFixed64(nil, fd.Number, vals), nil
	case KindBytes:
		var buf []byte
		for _, e := range elems {
			buf = wire.AppendLenDelim(buf, fd.Number, e.([]byte))
		}
		return buf, nil
	case KindString:
		var buf []byte
		for _, e := range elems {
			buf = wire.AppendLenDelim(buf, fd.Number, []byte(e.(string)))
		}
		return buf, nil
	case KindMessage:
		var buf []byte
		for _, e := range elems {
			sub, err := Encode(e.(*MessageValue))
			if err != nil {
				return nil, err
			}
			buf = wire.AppendLenDelim(buf, fd.Number, sub)
		}
		return buf, nil
	default:
		return nil, herr.New(herr.Malformed, "repeated field %s: unresolved field type", fd.Name)
	}
}
