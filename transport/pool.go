// Package transport provides a connection pool for pre-warming outbound
// TCP connections to the real game server, so an accepted client
// connection does not have to wait out a fresh TCP (and, on the real
// service, TLS) handshake before the proxy can start forwarding.
//
// Unlike a conventional client-side connection pool, connections here
// are never returned: each one backs exactly one intercepted session
// for that session's lifetime, since the upstream protocol binds a
// connection to a single authenticated client. The pool's job is only
// to keep a small number of connections dialed ahead of demand.
package transport

import (
	"net"
	"sync"
)

// BackendPool keeps up to maxConns connections dialed ahead of time.
// Get hands out a pre-warmed connection if one is ready, otherwise
// dials synchronously; either way it kicks off a replenish so the pool
// refills in the background.
//
// dial resolves and dials one backend connection per call, rather than
// always targeting a single fixed address: a caller wiring a
// loadbalance.Balancer in front of this pool (through
// frontend.Connector.Dial) gets a fresh pick — and therefore load
// spread across every registered backend — on every replenish, not
// just once at construction.
type BackendPool struct {
	mu       sync.Mutex
	conns    chan net.Conn
	label    string
	maxConns int
	curConns int
	dial     func() (net.Conn, error)
}

// NewBackendPool creates a pool and starts filling it to maxConns in
// the background. label identifies the pool in logs (an address or a
// directory pool name); it plays no part in dialing.
func NewBackendPool(label string, maxConns int, dial func() (net.Conn, error)) *BackendPool {
	p := &BackendPool{
		conns:    make(chan net.Conn, maxConns),
		label:    label,
		maxConns: maxConns,
		dial:     dial,
	}
	for i := 0; i < maxConns; i++ {
		go p.replenish()
	}
	return p
}

// Label returns the pool's logging label, as given to NewBackendPool.
func (p *BackendPool) Label() string {
	return p.label
}

// Get returns a connection to the backend, preferring an already
// dialed one.
func (p *BackendPool) Get() (net.Conn, error) {
	select {
	case conn := <-p.conns:
		go p.replenish()
		return conn, nil
	default:
	}

	p.mu.Lock()
	p.curConns++
	p.mu.Unlock()
	conn, err := p.dial()
	if err != nil {
		p.mu.Lock()
		p.curConns--
		p.mu.Unlock()
		return nil, err
	}
	return conn, nil
}

// replenish dials one more connection and parks it in the pool,
// unless the pool is already at capacity.
func (p *BackendPool) replenish() {
	p.mu.Lock()
	if p.curConns >= p.maxConns {
		p.mu.Unlock()
		return
	}
	p.curConns++
	p.mu.Unlock()

	conn, err := p.dial()
	if err != nil {
		p.mu.Lock()
		p.curConns--
		p.mu.Unlock()
		return
	}

	select {
	case p.conns <- conn:
	default:
		// Pool filled by a concurrent replenish; this connection is
		// surplus, close it rather than leak it.
		conn.Close()
		p.mu.Lock()
		p.curConns--
		p.mu.Unlock()
	}
}

// Close closes every connection currently sitting idle in the pool.
func (p *BackendPool) Close() error {
	close(p.conns)
	for conn := range p.conns {
		conn.Close()
	}
	return nil
}
