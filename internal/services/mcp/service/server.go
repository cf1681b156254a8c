package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/Estagiarius/simulajuls/internal/platform/errors/i18n"
	platformgrpc "github.com/Estagiarius/simulajuls/internal/platform/grpc"
	"github.com/Estagiarius/simulajuls/internal/platform/logging"
	"github.com/Estagiarius/simulajuls/internal/platform/timeouts"
	"github.com/Estagiarius/simulajuls/internal/services/simulation/api/grpcapi"
	"github.com/Estagiarius/simulajuls/internal/services/simulation/runner"
	"github.com/Estagiarius/simulajuls/internal/simulation"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "simulajuls-mcp"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// defaultHTTPAddr keeps the HTTP transport local unless configured.
	defaultHTTPAddr = "localhost:8081"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves the streamable HTTP transport.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	// GRPCAddr selects a remote simulation service. Empty runs in process.
	GRPCAddr  string
	Transport TransportKind
	HTTPAddr  string
	// DefaultLocale renders tool errors when the call names no locale.
	DefaultLocale string
	Logger        *zap.Logger
	// Registry backs the in-process simulator. Nil uses simulation.Default.
	Registry *simulation.Registry
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
	logger    *zap.Logger
}

// New creates an MCP server whose tools run on the configured simulator.
// With a gRPC address it waits for the remote service to report SERVING.
func New(ctx context.Context, cfg Config) (*Server, error) {
	logger := logging.OrNop(cfg.Logger)

	var sim runner.Simulator
	var conn *grpc.ClientConn
	if cfg.GRPCAddr != "" {
		var err error
		conn, err = platformgrpc.Dial(ctx, platformgrpc.DialConfig{
			Addr:    cfg.GRPCAddr,
			Service: grpcapi.ServiceName,
			Timeout: timeouts.GRPCDial,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to simulation server at %s: %w", cfg.GRPCAddr, err)
		}
		sim = runner.Remote{Client: grpcapi.NewClient(conn), Timeout: timeouts.Request}
		logger.Info("using remote simulation service", zap.String("addr", cfg.GRPCAddr))
	} else {
		registry := cfg.Registry
		if registry == nil {
			registry = simulation.Default()
		}
		sim = runner.Local{Registry: registry}
	}

	mcpServer, err := newMCPServer(sim, i18n.GetCatalog(cfg.DefaultLocale).Locale())
	if err != nil {
		if conn != nil {
			_ = conn.Close()
		}
		return nil, err
	}
	return &Server{mcpServer: mcpServer, conn: conn, logger: logger}, nil
}

// newMCPServer registers every simulation tool and the catalog resource.
func newMCPServer(sim runner.Simulator, defaultLocale string) (*mcp.Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registrar := mcpServerRegistrationAdapter{server: mcpServer}
	if err := registerSimulationTools(registrar, sim, defaultLocale); err != nil {
		return nil, fmt.Errorf("register simulation tools: %w", err)
	}
	registerCatalogResource(registrar, sim)
	return mcpServer, nil
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	if cfg.Transport != TransportStdio && cfg.Transport != TransportHTTP {
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	if cfg.Transport == TransportHTTP {
		addr := cfg.HTTPAddr
		if addr == "" {
			addr = defaultHTTPAddr
		}
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			_ = server.Close()
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return server.ServeStreamableHTTP(ctx, listener)
	}
	return server.Serve(ctx)
}

// Serve runs the MCP server on stdio until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// ServeStreamableHTTP serves the streamable HTTP transport on listener until the
// context ends.
func (s *Server) ServeStreamableHTTP(ctx context.Context, listener net.Listener) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	s.logger.Info("serving MCP over HTTP", zap.String("addr", listener.Addr().String()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve MCP HTTP: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("MCP HTTP shutdown timed out, closing connections", zap.Error(err))
			return httpServer.Close()
		}
		return nil
	})

	err := g.Wait()
	if closeErr := s.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("close gRPC connection: %w", closeErr)
	}
	return err
}

// Close releases the gRPC connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport starts the MCP server using the provided transport.
// The server and its gRPC connection share a single exit path so cleanup
// matches for stdio and in-memory runs.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
