// Package config assembles the settings a running proxy listener needs
// out of functional options, the way the rest of this module's
// constructors (NewProxy, broker.New, NewInterceptPipe, ...) take their
// parameters directly rather than through a shared struct. Options let
// the CLI layer (cmd/hearthproxy) build up a ProxyConfig incrementally
// from flags without every field needing its own constructor parameter.
package config

import "time"

// ProxyConfig holds everything needed to start one intercepting proxy
// listener.
type ProxyConfig struct {
	ListenAddr      string
	BackendAddr     string
	BackendPoolSize int
	BufferSize      int

	RateLimitPerSecond float64
	RateLimitBurst     int

	DirectoryEndpoints []string
	DirectoryPoolName  string
	DirectoryTTL       time.Duration
}

// Option mutates a ProxyConfig during construction.
type Option func(*ProxyConfig)

// DefaultConfig returns a ProxyConfig with the same defaults the
// underlying packages already fall back to when left unset (see
// pipe.DefaultBufSize, transport.BackendPool).
func DefaultConfig() *ProxyConfig {
	return &ProxyConfig{
		BackendPoolSize: 4,
		BufferSize:      64 * 1024,
		DirectoryTTL:    10 * time.Second,
	}
}

// New builds a ProxyConfig from DefaultConfig, applying opts in order.
func New(opts ...Option) *ProxyConfig {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithListenAddr sets the address the proxy accepts client connections on.
func WithListenAddr(addr string) Option {
	return func(c *ProxyConfig) { c.ListenAddr = addr }
}

// WithBackendAddr sets the real game server address the proxy dials.
func WithBackendAddr(addr string) Option {
	return func(c *ProxyConfig) { c.BackendAddr = addr }
}

// WithBackendPoolSize sets how many backend connections are kept
// pre-warmed ahead of demand.
func WithBackendPoolSize(n int) Option {
	return func(c *ProxyConfig) { c.BackendPoolSize = n }
}

// WithBufferSize sets the per-direction ring buffer capacity used by
// each connection's pipe.
func WithBufferSize(n int) Option {
	return func(c *ProxyConfig) { c.BufferSize = n }
}

// WithRateLimit enables the broker's request-flood guard: r requests
// per second, with the given burst allowance. A zero rate leaves rate
// limiting disabled.
func WithRateLimit(r float64, burst int) Option {
	return func(c *ProxyConfig) {
		c.RateLimitPerSecond = r
		c.RateLimitBurst = burst
	}
}

// WithDirectory enables registering this listener in an etcd-backed
// directory under poolName, so other listeners (or an operator) can
// discover it.
func WithDirectory(endpoints []string, poolName string, ttl time.Duration) Option {
	return func(c *ProxyConfig) {
		c.DirectoryEndpoints = endpoints
		c.DirectoryPoolName = poolName
		c.DirectoryTTL = ttl
	}
}
