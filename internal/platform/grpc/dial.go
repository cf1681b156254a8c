// Package grpc holds client helpers for binaries that call the simulation
// gRPC service.
package grpc

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// NewClientFunc creates a client connection without performing I/O.
type NewClientFunc func(target string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)

// DialStage describes where a connection attempt failed.
type DialStage string

const (
	// DialStageConnect indicates the client could not be created.
	DialStageConnect DialStage = "connect"
	// DialStageHealth indicates the health check never reported SERVING.
	DialStageHealth DialStage = "health"
)

// DialError wraps connection failures with the stage that produced them.
type DialError struct {
	Stage DialStage
	Addr  string
	Err   error
}

// Error implements the error interface.
func (e *DialError) Error() string {
	if e == nil {
		return "gRPC dial error"
	}
	return fmt.Sprintf("gRPC %s error for %s: %v", e.Stage, e.Addr, e.Err)
}

// Unwrap returns the underlying error.
func (e *DialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ClientOptions returns the dial options shared by simulation clients. Every
// outbound call carries trace context when a TracerProvider is registered.
func ClientOptions() []gogrpc.DialOption {
	return []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// DialConfig controls Dial.
type DialConfig struct {
	// Addr is the target passed to grpc.NewClient.
	Addr string
	// Service is the health service name checked before returning.
	Service string
	// Timeout bounds the health wait. Zero leaves only ctx in charge.
	Timeout time.Duration
	// Logger receives health progress at debug level.
	Logger *zap.Logger
	// NewClient overrides grpc.NewClient.
	NewClient NewClientFunc
}

// Dial connects to cfg.Addr and waits until its health service reports
// SERVING. The connection is closed when the health check fails.
func Dial(ctx context.Context, cfg DialConfig, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	newClient := cfg.NewClient
	if newClient == nil {
		newClient = gogrpc.NewClient
	}
	if len(opts) == 0 {
		opts = ClientOptions()
	}

	conn, err := newClient(cfg.Addr, opts...)
	if err != nil {
		return nil, &DialError{Stage: DialStageConnect, Addr: cfg.Addr, Err: err}
	}

	waitCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	if err := WaitForHealth(waitCtx, conn, cfg.Service, cfg.Logger); err != nil {
		_ = conn.Close()
		return nil, &DialError{Stage: DialStageHealth, Addr: cfg.Addr, Err: err}
	}
	return conn, nil
}
