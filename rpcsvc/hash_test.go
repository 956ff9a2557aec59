package rpcsvc

import "testing"

func TestHashServiceNameKnownValues(t *testing.T) {
	// Values cross-checked against the FNV-1a-32 definition itself
	// (offset basis 0x811c9dc5, prime 0x01000193, xor-then-multiply),
	// not against any recorded service hash, since the source never
	// prints the numeric hashes it computes at import time.
	cases := []struct {
		name string
		want uint32
	}{
		{"", 0x811c9dc5},
		{"a", 0xe40c292c},
	}
	for _, c := range cases {
		if got := HashServiceName(c.name); got != c.want {
			t.Errorf("HashServiceName(%q) = %#x, want %#x", c.name, got, c.want)
		}
	}
}

func TestHashServiceNameDeterministic(t *testing.T) {
	a := HashServiceName("bnet.protocol.connection.ConnectionService")
	b := HashServiceName("bnet.protocol.connection.ConnectionService")
	if a != b {
		t.Fatalf("hash not deterministic: %#x != %#x", a, b)
	}
	if a == HashServiceName("bnet.protocol.connection.ConnectionService2") {
		t.Fatalf("distinct names hashed to the same value")
	}
}
