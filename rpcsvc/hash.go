// Package rpcsvc implements the RPC service registry: a fixed set of
// declaratively defined services, each identified across connections
// by a 32-bit FNV-1a hash of its fully-qualified dotted name and,
// within one connection, by a bind-time-negotiated numeric id.
//
// Grounded on hearthy.bnet.rpc (Service, ServiceMethod, defservice) and
// hearthy.bnet.utils (the hash function).
package rpcsvc

const (
	fnvOffsetBasis32 = 0x811c9dc5
	fnvPrime32       = 0x01000193
)

// HashServiceName computes the 32-bit FNV-1a hash of a service's
// fully-qualified dotted name, matching hearthy.bnet.utils.hash's
// xor-then-multiply order.
func HashServiceName(name string) uint32 {
	h := uint32(fnvOffsetBasis32)
	for i := 0; i < len(name); i++ {
		h ^= uint32(name[i])
		h *= fnvPrime32
	}
	return h
}
