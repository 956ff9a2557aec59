// Package registry provides the etcd-based implementation of the
// Registry interface.
//
// etcd is a distributed key-value store that provides strong
// consistency (Raft protocol). We use it as a "distributed phonebook"
// for proxy listeners:
//
//	Key:   /hearthproxy/listeners/{poolName}/{Addr}
//	Value: JSON-encoded ListenerInstance
//
// Registration uses TTL-based leases: if a proxy process crashes, its
// lease expires and the entry is automatically removed — preventing
// "ghost" listeners from being handed out to clients.
package registry

import (
	"context"
	"encoding/json"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdRegistry implements Registry using etcd v3.
type EtcdRegistry struct {
	client *clientv3.Client // etcd client connection (thread-safe, shared across goroutines)
}

// NewEtcdRegistry creates a new registry connected to the given etcd endpoints.
func NewEtcdRegistry(endpoints []string) (*EtcdRegistry, error) {
	c, err := clientv3.New(clientv3.Config{
		Endpoints: endpoints,
	})
	if err != nil {
		return nil, err
	}
	return &EtcdRegistry{client: c}, nil
}

// Register adds a listener to etcd with a TTL lease.
//
// Flow:
//  1. Create a lease with the given TTL (e.g., 10 seconds)
//  2. Put the key-value pair with the lease attached
//  3. Start KeepAlive to automatically renew the lease
//
// Note: leaseID is a local variable, NOT stored on the struct. This
// prevents a data race when multiple proxies share one EtcdRegistry
// instance.
func (r *EtcdRegistry) Register(poolName string, instance ListenerInstance, ttl int64) error {
	ctx := context.TODO()

	// Create a TTL-based lease — if KeepAlive stops, the entry auto-expires
	lease, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return err
	}

	// Serialize the instance metadata
	val, err := json.Marshal(instance)
	if err != nil {
		return err
	}

	// Store in etcd: key = /hearthproxy/listeners/{pool}/{addr}, value = JSON metadata
	_, err = r.client.Put(ctx, "/hearthproxy/listeners/"+poolName+"/"+instance.Addr, string(val), clientv3.WithLease(lease.ID))
	if err != nil {
		return err
	}

	// Start background lease renewal — KeepAlive sends heartbeats to etcd
	ch, err := r.client.KeepAlive(ctx, lease.ID)
	if err != nil {
		return err
	}

	// Consume KeepAlive responses to prevent the channel from filling up
	go func() {
		for range ch {
		}
	}()
	return nil
}

// Deregister removes a listener from etcd.
// Called during graceful shutdown before closing the listener.
func (r *EtcdRegistry) Deregister(poolName string, addr string) error {
	ctx := context.TODO()
	_, err := r.client.Delete(ctx, "/hearthproxy/listeners/"+poolName+"/"+addr)
	if err != nil {
		return err
	}
	return nil
}

// Watch monitors a pool prefix in etcd and emits updated listener lists
// whenever changes occur (new registrations, deregistrations, lease
// expirations).
//
// Uses etcd's Watch API (server-push), which is more efficient than polling.
func (r *EtcdRegistry) Watch(poolName string) <-chan []ListenerInstance {
	ctx := context.TODO()
	ch := make(chan []ListenerInstance, 1)
	prefix := "/hearthproxy/listeners/" + poolName + "/"

	go func() {
		// Watch all keys under the pool prefix
		watchChan := r.client.Watch(ctx, prefix, clientv3.WithPrefix())
		for range watchChan {
			// On any change, re-fetch the full instance list
			// (simpler than parsing individual watch events)
			instances, _ := r.Discover(poolName)
			ch <- instances
		}
	}()

	return ch
}

// Discover returns all currently registered listeners for a pool.
// Queries etcd with a key prefix to find all listeners under
// /hearthproxy/listeners/{poolName}/.
func (r *EtcdRegistry) Discover(poolName string) ([]ListenerInstance, error) {
	ctx := context.TODO()
	prefix := "/hearthproxy/listeners/" + poolName + "/"

	// Get all keys with the prefix
	resp, err := r.client.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}

	// Deserialize each value into a ListenerInstance
	instances := make([]ListenerInstance, 0)
	for _, kv := range resp.Kvs {
		var instance ListenerInstance
		if err := json.Unmarshal(kv.Value, &instance); err != nil {
			continue // Skip malformed entries
		}
		instances = append(instances, instance)
	}

	return instances, nil
}
