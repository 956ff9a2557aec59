// Package loadbalance provides strategies for picking one proxy
// listener out of several registered under the same pool name, so a
// connector can spread client connections across a horizontally scaled
// deployment instead of hardcoding a single address.
//
// Three strategies are implemented:
//   - RoundRobin:      stateless listeners, equal capacity
//   - WeightedRandom:  heterogeneous listeners (different CPU/memory)
//   - ConsistentHash:  affinity-sensitive routing (same client key keeps
//     landing on the same listener, useful once a game session has
//     pinned state on one proxy instance)
package loadbalance

import "github.com/hearthy-oss/hearthproxy/registry"

// Balancer is the interface for load balancing strategies.
// The connector calls Pick() before each new client connection to
// select a target listener.
type Balancer interface {
	// Pick selects one instance from the available list.
	// Called on every new connection — must be goroutine-safe.
	Pick(instances []registry.ListenerInstance) (*registry.ListenerInstance, error)

	// Name returns the strategy name (for logging/debugging).
	Name() string
}
