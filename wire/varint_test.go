package wire

import "testing"

func TestVarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 16384, 1 << 40, ^uint64(0)}
	for _, val := range cases {
		buf := make([]byte, maxVarintBytes)
		n := WriteVarint(val, buf, 0)
		if n != VarintLen(val) {
			t.Errorf("VarintLen(%d) = %d, want %d", val, VarintLen(val), n)
		}
		got, next, err := ReadVarint(buf, 0, false)
		if err != nil {
			t.Fatalf("ReadVarint(%d): %v", val, err)
		}
		if next != n {
			t.Errorf("ReadVarint(%d) consumed %d bytes, want %d", val, next, n)
		}
		if got != val {
			t.Errorf("ReadVarint round trip: got %d, want %d", got, val)
		}
	}
}

func TestVarintSignedRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 12345, -12345, -1 << 62}
	for _, want := range cases {
		buf := make([]byte, maxVarintBytes)
		n := WriteVarint(uint64(want), buf, 0)
		got, next, err := ReadVarint(buf, 0, true)
		if err != nil {
			t.Fatalf("ReadVarint(%d): %v", want, err)
		}
		if next != n {
			t.Errorf("consumed %d bytes, want %d", next, n)
		}
		if int64(got) != want {
			t.Errorf("signed round trip: got %d, want %d", int64(got), want)
		}
	}
}

func TestReadVarintTruncated(t *testing.T) {
	buf := []byte{0x80, 0x80}
	if _, _, err := ReadVarint(buf, 0, false); err == nil {
		t.Fatal("expected error decoding truncated varint, got nil")
	}
}

func TestPackedVarintRoundTrip(t *testing.T) {
	vals := []uint64{1, 2, 300, 70000}
	buf := make([]byte, 64)
	end := WritePackedVarint(vals, buf, 0)

	got, err := ReadPackedVarint(buf, 0, end, false)
	if err != nil {
		t.Fatalf("ReadPackedVarint: %v", err)
	}
	if len(got) != len(vals) {
		t.Fatalf("got %d values, want %d", len(got), len(vals))
	}
	for i := range vals {
		if got[i] != vals[i] {
			t.Errorf("element %d: got %d, want %d", i, got[i], vals[i])
		}
	}
}

func TestPackedVarintMisaligned(t *testing.T) {
	vals := []uint64{1, 300}
	buf := make([]byte, 64)
	end := WritePackedVarint(vals, buf, 0)

	if _, err := ReadPackedVarint(buf, 0, end-1, false); err == nil {
		t.Fatal("expected misaligned error, got nil")
	}
}
