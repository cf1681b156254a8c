// Package app hosts the HTTP and gRPC simulation servers as one process.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/Estagiarius/simulajuls/internal/platform/logging"
	"github.com/Estagiarius/simulajuls/internal/platform/timeouts"
	"github.com/Estagiarius/simulajuls/internal/services/simulation/api/grpcapi"
	"github.com/Estagiarius/simulajuls/internal/services/simulation/api/httpapi"
	"github.com/Estagiarius/simulajuls/internal/simulation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// Config configures the simulation servers.
type Config struct {
	HTTPAddr       string
	GRPCAddr       string
	AllowedOrigins []string
	DefaultLocale  string
	Logger         *zap.Logger
	// Registry defaults to simulation.Default().
	Registry *simulation.Registry
}

// Server hosts the simulation API over HTTP and gRPC.
type Server struct {
	httpListener net.Listener
	grpcListener net.Listener
	httpServer   *http.Server
	grpcServer   *grpc.Server
	health       *health.Server
	logger       *zap.Logger
}

// New creates a configured server listening on both addresses.
func New(cfg Config) (*Server, error) {
	logger := logging.OrNop(cfg.Logger)
	registry := cfg.Registry
	if registry == nil {
		registry = simulation.Default()
	}

	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return nil, fmt.Errorf("listen HTTP on %s: %w", cfg.HTTPAddr, err)
	}
	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		_ = httpListener.Close()
		return nil, fmt.Errorf("listen gRPC on %s: %w", cfg.GRPCAddr, err)
	}

	handler := httpapi.NewHandler(registry, httpapi.Options{
		Logger:         logger.Named("http"),
		AllowedOrigins: cfg.AllowedOrigins,
		DefaultLocale:  cfg.DefaultLocale,
	})
	grpcServer, healthServer := grpcapi.NewServer(registry, grpcapi.Options{
		Logger:        logger.Named("grpc"),
		DefaultLocale: cfg.DefaultLocale,
	})

	return &Server{
		httpListener: httpListener,
		grpcListener: grpcListener,
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		grpcServer: grpcServer,
		health:     healthServer,
		logger:     logger,
	}, nil
}

// HTTPAddr returns the HTTP listener address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the gRPC listener address.
func (s *Server) GRPCAddr() string {
	if s == nil || s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// Run creates and serves a server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve runs both servers and blocks until ctx ends or one of them fails,
// then shuts both down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s.logger.Info("simulation server listening",
		zap.String("http_addr", s.HTTPAddr()),
		zap.String("grpc_addr", s.GRPCAddr()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.httpServer.Serve(s.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve HTTP: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.grpcServer.Serve(s.grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})
	return g.Wait()
}

func (s *Server) shutdown() error {
	s.health.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	var httpErr error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		httpErr = fmt.Errorf("shutdown HTTP: %w", err)
	}

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		s.logger.Warn("gRPC graceful stop timed out, forcing stop")
		s.grpcServer.Stop()
		<-stopped
	}
	return httpErr
}
