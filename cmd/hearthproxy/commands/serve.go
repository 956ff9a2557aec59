package commands

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hearthy-oss/hearthproxy/config"
	"github.com/hearthy-oss/hearthproxy/frontend"
	"github.com/hearthy-oss/hearthproxy/loadbalance"
	"github.com/hearthy-oss/hearthproxy/pipe"
	"github.com/hearthy-oss/hearthproxy/registry"
	"github.com/hearthy-oss/hearthproxy/render"
	"github.com/hearthy-oss/hearthproxy/schema"
	"github.com/hearthy-oss/hearthproxy/tcpendpoint"
	"github.com/hearthy-oss/hearthproxy/tracker"
)

var (
	listenAddr      string
	backendAddr     string
	advertiseAddr   string
	backendPoolSize int
	outputFormat    string
	verbose         bool

	directoryEndpoints []string
	directoryPool      string
	directoryTTL       time.Duration

	backendDirectoryEndpoints []string
	backendPool               string
	backendBalancer           string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept client connections and proxy them to a backend game server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", ":3724", "address to accept client connections on")
	serveCmd.Flags().StringVar(&backendAddr, "backend", "", "real game server address to connect to (ignored if --backend-directory-endpoints is set)")
	serveCmd.Flags().StringVar(&advertiseAddr, "advertise-addr", "", "address advertised to the listener directory (defaults to --listen)")
	serveCmd.Flags().IntVar(&backendPoolSize, "backend-pool-size", 4, "backend connections to keep pre-warmed")
	serveCmd.Flags().StringVar(&outputFormat, "format", "text", "decoded packet output format: text or json")
	serveCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable development-mode (human-readable, debug-level) logging")
	serveCmd.Flags().StringSliceVar(&directoryEndpoints, "directory-endpoints", nil, "etcd endpoints for the listener directory this proxy registers itself under (disabled if empty)")
	serveCmd.Flags().StringVar(&directoryPool, "directory-pool", "aurora-proxy", "pool name this listener registers itself under")
	serveCmd.Flags().DurationVar(&directoryTTL, "directory-ttl", 10*time.Second, "listener directory registration lease TTL")
	serveCmd.Flags().StringSliceVar(&backendDirectoryEndpoints, "backend-directory-endpoints", nil, "etcd endpoints for discovering backend game servers (if set, overrides --backend)")
	serveCmd.Flags().StringVar(&backendPool, "backend-pool", "aurora-backend", "pool name backend game servers register themselves under")
	serveCmd.Flags().StringVar(&backendBalancer, "backend-balancer", "round-robin", "backend selection strategy: round-robin or weighted-random")

	rootCmd.AddCommand(serveCmd)
}

// backendDialer resolves how to reach a backend game server: a fixed
// address by default, or a pool of addresses discovered through an
// etcd directory and spread across with a loadbalance.Balancer when
// --backend-directory-endpoints is set. Returns a logging label for the
// backend connection pool alongside the dial func.
func backendDialer(fixedAddr string) (string, func() (net.Conn, error), error) {
	if len(backendDirectoryEndpoints) == 0 {
		if fixedAddr == "" {
			return "", nil, fmt.Errorf("one of --backend or --backend-directory-endpoints is required")
		}
		return fixedAddr, func() (net.Conn, error) {
			return net.Dial("tcp", fixedAddr)
		}, nil
	}

	reg, err := registry.NewEtcdRegistry(backendDirectoryEndpoints)
	if err != nil {
		return "", nil, err
	}
	balancer, err := newBalancer(backendBalancer)
	if err != nil {
		return "", nil, err
	}
	connector := frontend.NewConnector(reg, backendPool, balancer)
	return backendPool, connector.Dial, nil
}

// newBalancer resolves the Balancer named by --backend-balancer.
// loadbalance.ConsistentHashBalancer is deliberately not an option here:
// its Pick takes a routing key, not a candidate list, so it doesn't
// satisfy loadbalance.Balancer and can't sit behind frontend.Connector
// the way the other two strategies do.
func newBalancer(name string) (loadbalance.Balancer, error) {
	switch name {
	case "round-robin":
		return &loadbalance.RoundRobinBalancer{}, nil
	case "weighted-random":
		return &loadbalance.WeightedRandomBalancer{}, nil
	default:
		return nil, fmt.Errorf("unknown --backend-balancer %q", name)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := config.New(
		config.WithListenAddr(listenAddr),
		config.WithBackendAddr(backendAddr),
		config.WithBackendPoolSize(backendPoolSize),
	)

	format := render.FormatText
	if outputFormat == "json" {
		format = render.FormatJSON
	}
	renderer := render.GetRenderer(format)
	out := cmd.OutOrStdout()

	build := func() tcpendpoint.Wiring {
		return func(client, backend pipe.Endpoint) {
			handler := &sessionHandler{
				logger:    logger,
				processor: tracker.NewProcessor(logger),
				renderer:  renderer,
				out:       out,
			}
			pipe.NewInterceptPipe(client, backend, handler, logger)
		}
	}

	poolLabel, dial, err := backendDialer(cfg.BackendAddr)
	if err != nil {
		return err
	}

	proxy, err := tcpendpoint.NewProxy(cfg.ListenAddr, poolLabel, dial, cfg.BackendPoolSize, build, logger)
	if err != nil {
		return err
	}

	if len(directoryEndpoints) > 0 {
		reg, err := registry.NewEtcdRegistry(directoryEndpoints)
		if err != nil {
			return err
		}
		addr := advertiseAddr
		if addr == "" {
			addr = cfg.ListenAddr
		}
		if err := proxy.RegisterDirectory(reg, directoryPool, addr, int64(directoryTTL.Seconds())); err != nil {
			return err
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info("shutdown signal received, closing listener")
		proxy.Close()
	}()

	logger.Info("listening", zap.String("addr", cfg.ListenAddr), zap.String("backend", poolLabel))
	if err := proxy.Serve(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// sessionHandler is the pipe.Handler each accepted connection is wired to:
// it folds decoded packets into a tracker.World and prints every one of
// them through the configured Renderer.
type sessionHandler struct {
	logger    *zap.Logger
	processor *tracker.Processor
	renderer  render.Renderer
	out       io.Writer
}

func (h *sessionHandler) OnStartIntercept(first *schema.MessageValue) {
	h.logger.Info("aurora handshake observed, switching to intercept mode")
	if err := h.renderer.Render(h.out, first); err != nil {
		h.logger.Warn("could not render handshake packet", zap.Error(err))
	}
}

func (h *sessionHandler) OnPacket(epid int, packet *schema.MessageValue) pipe.Action {
	if err := h.processor.Process(packet); err != nil {
		h.logger.Warn("tracker could not process packet",
			zap.String("type", packet.Type.Name), zap.Error(err))
	}
	if err := h.renderer.Render(h.out, packet); err != nil {
		h.logger.Warn("could not render packet", zap.Error(err))
	}
	return pipe.Accept
}
