package grpc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

func TestDialServing(t *testing.T) {
	addr, _, stop := startHealthServer(t, grpc_health_v1.HealthCheckResponse_SERVING)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, err := Dial(ctx, DialConfig{Addr: addr, Timeout: time.Second})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close conn: %v", err)
	}
}

func TestDialNotServingReportsHealthStage(t *testing.T) {
	addr, _, stop := startHealthServer(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	defer stop()

	start := time.Now()
	conn, err := Dial(context.Background(), DialConfig{Addr: addr, Timeout: 200 * time.Millisecond})
	if conn != nil {
		_ = conn.Close()
		t.Fatal("expected nil connection on error")
	}
	var dialErr *DialError
	if !errors.As(err, &dialErr) {
		t.Fatalf("expected DialError, got %T (%v)", err, err)
	}
	if dialErr.Stage != DialStageHealth {
		t.Fatalf("stage = %q, want %q", dialErr.Stage, DialStageHealth)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("timeout did not bound the health wait, took %v", elapsed)
	}
}

func TestDialConnectStage(t *testing.T) {
	failing := func(string, ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
		return nil, errors.New("bad target")
	}

	_, err := Dial(context.Background(), DialConfig{Addr: "nowhere", NewClient: failing})
	var dialErr *DialError
	if !errors.As(err, &dialErr) {
		t.Fatalf("expected DialError, got %T", err)
	}
	if dialErr.Stage != DialStageConnect {
		t.Fatalf("stage = %q, want %q", dialErr.Stage, DialStageConnect)
	}
	if !strings.Contains(err.Error(), "gRPC connect error for nowhere") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestDialErrorFormatting(t *testing.T) {
	var nilErr *DialError
	if nilErr.Error() == "" {
		t.Fatal("expected fallback error message")
	}
	if nilErr.Unwrap() != nil {
		t.Fatal("expected nil unwrap for nil error")
	}
}

func TestClientOptions(t *testing.T) {
	if got := len(ClientOptions()); got != 2 {
		t.Fatalf("ClientOptions() returned %d options, want 2", got)
	}
}
