// Package frontend picks which backing proxy listener a new client
// connection should be routed to when more than one is registered
// under the same pool name. Grounded on client.Client's
// Registry.Discover → Balancer.Pick → dial call flow, adapted from
// "pick a service instance for one RPC call" to "pick a listener for
// one incoming connection."
package frontend

import (
	"net"

	"github.com/hearthy-oss/hearthproxy/loadbalance"
	"github.com/hearthy-oss/hearthproxy/registry"
)

// Connector discovers the live listeners in one pool and picks one
// using a Balancer, on demand — it holds no cached state of its own
// between calls.
type Connector struct {
	directory registry.Registry
	poolName  string
	balancer  loadbalance.Balancer
}

// NewConnector creates a Connector over directory, restricted to the
// listeners registered under poolName, routed by balancer.
func NewConnector(directory registry.Registry, poolName string, balancer loadbalance.Balancer) *Connector {
	return &Connector{directory: directory, poolName: poolName, balancer: balancer}
}

// Pick discovers the current listener set and returns the address the
// balancer chose.
func (c *Connector) Pick() (string, error) {
	instances, err := c.directory.Discover(c.poolName)
	if err != nil {
		return "", err
	}
	inst, err := c.balancer.Pick(instances)
	if err != nil {
		return "", err
	}
	return inst.Addr, nil
}

// Dial discovers and connects to one listener in the pool.
func (c *Connector) Dial() (net.Conn, error) {
	addr, err := c.Pick()
	if err != nil {
		return nil, err
	}
	return net.Dial("tcp", addr)
}
