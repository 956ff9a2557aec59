package tcpendpoint

import (
	"net"

	"go.uber.org/zap"

	"github.com/hearthy-oss/hearthproxy/pipe"
	"github.com/hearthy-oss/hearthproxy/registry"
	"github.com/hearthy-oss/hearthproxy/transport"
)

// Proxy accepts client connections on a listen address and, for each
// one, dials a matching backend connection and runs them through
// Wiring. Grounded on hearthy.proxy.pipe.TcpEndpointProvider's
// accept-and-hand-off role and server.Server.Serve's accept loop.
type Proxy struct {
	listener net.Listener
	backend  *transport.BackendPool
	build    func() Wiring
	logger   *zap.Logger

	directory     registry.Registry
	poolName      string
	advertiseAddr string
}

// NewProxy listens on listenAddr and pre-warms backendPoolSize
// connections dialed by dial, labeling the backend pool poolLabel in
// logs. build is called once per accepted connection to produce the
// Wiring that assembles that session's pipe.
func NewProxy(listenAddr, poolLabel string, dial func() (net.Conn, error), backendPoolSize int, build func() Wiring, logger *zap.Logger) (*Proxy, error) {
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, err
	}
	pool := transport.NewBackendPool(poolLabel, backendPoolSize, dial)
	return &Proxy{listener: ln, backend: pool, build: build, logger: logger}, nil
}

// NewFixedAddrProxy is NewProxy for the common case of a single, fixed
// backend address: every dial targets backendAddr.
func NewFixedAddrProxy(listenAddr, backendAddr string, backendPoolSize int, build func() Wiring, logger *zap.Logger) (*Proxy, error) {
	return NewProxy(listenAddr, backendAddr, func() (net.Conn, error) {
		return net.Dial("tcp", backendAddr)
	}, backendPoolSize, build, logger)
}

// RegisterDirectory announces this proxy's listener in reg under
// poolName, using advertiseAddr as the routable address (which may
// differ from the bind address passed to NewProxy, e.g. "0.0.0.0:3724"
// vs. the host's real IP). The registration renews itself until the
// process exits or Close deregisters it, mirroring the teacher's
// Serve(network, address, advertiseAddr, reg) parameter.
func (p *Proxy) RegisterDirectory(reg registry.Registry, poolName, advertiseAddr string, ttl int64) error {
	if err := reg.Register(poolName, registry.ListenerInstance{Addr: advertiseAddr}, ttl); err != nil {
		return err
	}
	p.directory = reg
	p.poolName = poolName
	p.advertiseAddr = advertiseAddr
	return nil
}

// Serve accepts connections until the listener is closed.
func (p *Proxy) Serve() error {
	for {
		client, err := p.listener.Accept()
		if err != nil {
			return err
		}
		go p.handleAccepted(client)
	}
}

func (p *Proxy) handleAccepted(client net.Conn) {
	backend, err := p.backend.Get()
	if err != nil {
		p.logger.Warn("could not obtain backend connection", zap.Error(err))
		client.Close()
		return
	}
	p.logger.Info("accepted connection",
		zap.String("client", client.RemoteAddr().String()),
		zap.String("backend", backend.RemoteAddr().String()))
	Run(client, backend, p.build(), p.logger)
}

// Close stops accepting new connections, deregisters from the
// directory (if registered), and closes the backend pool.
func (p *Proxy) Close() error {
	if p.directory != nil {
		if err := p.directory.Deregister(p.poolName, p.advertiseAddr); err != nil {
			p.logger.Warn("could not deregister listener", zap.Error(err))
		}
	}
	p.backend.Close()
	return p.listener.Close()
}
