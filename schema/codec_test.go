package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hearthy-oss/hearthproxy/herr"
	"github.com/hearthy-oss/hearthproxy/wire"
)

func buildTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	// Forward reference: Outer refers to Inner before Inner is defined.
	r.Define("Outer", []FieldSpec{
		{Number: 1, Name: "name", Type: "string"},
		{Number: 2, Name: "tags", Type: "uint32[]"},
		{Number: 3, Name: "child", Type: "Inner"},
		{Number: 4, Name: "children", Type: "Inner[]"},
		{Number: 5, Name: "blob", Type: "bytes"},
		{Number: 6, Name: "score", Type: "float"},
	})
	r.Define("Inner", []FieldSpec{
		{Number: 1, Name: "id", Type: "int32"},
	})
	if err := r.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return r
}

func TestForwardReferenceResolves(t *testing.T) {
	r := buildTestRegistry(t)
	outer, ok := r.Lookup("Outer")
	if !ok {
		t.Fatal("Outer not registered")
	}
	fd, ok := outer.FieldByName("child")
	if !ok {
		t.Fatal("child field missing")
	}
	if fd.Type.Kind != KindMessage || fd.Type.Message == nil || fd.Type.Message.Name != "Inner" {
		t.Errorf("child field did not resolve to Inner: %+v", fd.Type)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	r := buildTestRegistry(t)
	outer, _ := r.Lookup("Outer")
	inner, _ := r.Lookup("Inner")

	v := NewValue(outer)
	v.Set("name", "hello")
	v.Append("tags", uint64(1))
	v.Append("tags", uint64(300))

	child := NewValue(inner)
	child.Set("id", int64(42))
	v.Set("child", child)

	for _, id := range []int64{1, 2, 3} {
		c := NewValue(inner)
		c.Set("id", id)
		v.Append("children", c)
	}
	v.Set("blob", []byte{1, 2, 3})
	v.Set("score", float32(3.5))

	buf, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(outer, buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if diff := cmp.Diff(v.Map(), decoded.Map()); diff != "" {
		t.Errorf("decoded value differs from original (-want +got):\n%s", diff)
	}
}

func TestDecodeUnknownField(t *testing.T) {
	r := NewRegistry()
	r.Define("Empty", nil)
	msg := r.Define("Other", []FieldSpec{{Number: 9, Name: "x", Type: "int32"}})
	if err := r.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	empty, _ := r.Lookup("Empty")

	v := NewValue(msg)
	v.Set("x", int64(5))
	encoded, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	_, err = Decode(empty, encoded)
	if !herr.Is(err, herr.UnknownField) {
		t.Fatalf("expected UnknownField error, got %v", err)
	}
}

func TestDecodeDuplicateField(t *testing.T) {
	r := NewRegistry()
	r.Define("Dup", []FieldSpec{{Number: 1, Name: "x", Type: "int32"}})
	if err := r.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	dup, _ := r.Lookup("Dup")

	var buf []byte
	buf = appendTestVarintField(buf, 1, 5)
	buf = appendTestVarintField(buf, 1, 6)

	_, err := Decode(dup, buf)
	if !herr.Is(err, herr.Duplicated) {
		t.Fatalf("expected Duplicated error, got %v", err)
	}
}

func TestEncodeSkipsAbsentAndEmptyFields(t *testing.T) {
	r := NewRegistry()
	r.Define("Sparse", []FieldSpec{
		{Number: 1, Name: "x", Type: "int32"},
		{Number: 2, Name: "ys", Type: "int32[]"},
	})
	if err := r.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	sparse, _ := r.Lookup("Sparse")
	v := NewValue(sparse)

	buf, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(buf) != 0 {
		t.Errorf("expected empty encoding for all-absent value, got %x", buf)
	}
}

func TestDecodeRepeatedVarintAcceptsUnpackedSingleValues(t *testing.T) {
	r := NewRegistry()
	r.Define("Tags", []FieldSpec{{Number: 2, Name: "tags", Type: "uint32[]"}})
	if err := r.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	tags, _ := r.Lookup("Tags")

	// Three separate wire-type-0 fields sharing field number 2, instead
	// of one packed wire-type-2 field — both are valid protobuf shapes
	// for a repeated scalar.
	var buf []byte
	buf = wire.AppendVarintField(buf, 2, 1)
	buf = wire.AppendVarintField(buf, 2, 300)
	buf = wire.AppendVarintField(buf, 2, 70000)

	decoded, err := Decode(tags, buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := decoded.GetRepeated("tags")
	want := []any{uint64(1), uint64(300), uint64(70000)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unpacked repeated varint decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRepeatedFixed32AcceptsUnpackedSingleValues(t *testing.T) {
	r := NewRegistry()
	r.Define("Scores", []FieldSpec{{Number: 1, Name: "scores", Type: "fixed32[]"}})
	if err := r.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	scores, _ := r.Lookup("Scores")

	var buf []byte
	buf = wire.AppendFixed32Field(buf, 1, 7)
	buf = wire.AppendFixed32Field(buf, 1, 9)

	decoded, err := Decode(scores, buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got := decoded.GetRepeated("scores")
	want := []any{uint32(7), uint32(9)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unpacked repeated fixed32 decode mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRejectsUnresolvedType(t *testing.T) {
	r := NewRegistry()
	r.Define("Bad", []FieldSpec{{Number: 1, Name: "x", Type: "NoSuchType"}})
	if err := r.Build(); err == nil {
		t.Fatal("expected error for unresolved field type, got nil")
	}
}

func appendTestVarintField(buf []byte, fieldNumber uint32, val uint64) []byte {
	tmp := make([]byte, 16)
	n := 0
	tmp[n] = byte(fieldNumber << 3)
	n++
	for {
		b := byte(val & 0x7f)
		val >>= 7
		if val == 0 {
			tmp[n] = b
			n++
			break
		}
		tmp[n] = b | 0x80
		n++
	}
	return append(buf, tmp[:n]...)
}
