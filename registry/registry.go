// Package registry defines a directory of live proxy listeners.
//
// Running more than one intercepting proxy behind a shared frontend
// needs a way for each proxy to announce itself and for the others (or
// an external dashboard) to discover who's up. This mirrors the
// teacher's service-discovery directory, generalized from "RPC service
// instances" to "proxy listeners."
package registry

// ListenerInstance is one running proxy listener.
type ListenerInstance struct {
	Addr    string // Listen address clients connect to, e.g. "10.0.0.4:3724"
	Region  string // Deployment region or datacenter, for routing decisions
	Version string // Build version, for canary rollouts
	Weight  int    // Relative capacity, used by loadbalance.WeightedRandomBalancer
}

// Registry is the interface for proxy listener registration and
// discovery. Implementations include EtcdRegistry (production) and a
// test double.
type Registry interface {
	// Register announces a listener under poolName with a TTL lease.
	// The entry is automatically removed if KeepAlive stops (e.g. the
	// proxy process crashes).
	Register(poolName string, instance ListenerInstance, ttl int64) error

	// Deregister removes a listener from the directory. Called during
	// graceful shutdown, before closing the listening socket.
	Deregister(poolName string, addr string) error

	// Discover returns every currently registered listener in poolName.
	Discover(poolName string) ([]ListenerInstance, error)

	// Watch returns a channel that emits the updated listener list for
	// poolName whenever it changes.
	Watch(poolName string) <-chan []ListenerInstance
}
