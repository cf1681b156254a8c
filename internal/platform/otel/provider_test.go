package otel_test

import (
	"context"
	"testing"

	"github.com/Estagiarius/simulajuls/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("SIMULAJULS_OTEL_ENDPOINT", "")
	t.Setenv("SIMULAJULS_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("SIMULAJULS_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("SIMULAJULS_OTEL_ENABLED", "FALSE")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsBadSampleRatio(t *testing.T) {
	t.Setenv("SIMULAJULS_OTEL_SAMPLE_RATIO", "lots")
	if _, err := otel.Setup(context.Background(), "test-service"); err == nil {
		t.Fatal("expected parse error")
	}

	cfg := otel.Config{Endpoint: "http://192.0.2.1:4318", SampleRatio: 2}
	if _, err := otel.SetupWithConfig(context.Background(), "test-service", cfg); err == nil {
		t.Fatal("expected ratio error")
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no export happens.
	cfg := otel.Config{Endpoint: "http://192.0.2.1:4318", SampleRatio: 1}

	shutdown, err := otel.SetupWithConfig(context.Background(), "test-service", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
	if otel.Tracer() == nil {
		t.Fatal("expected tracer")
	}
}

func TestConfigActive(t *testing.T) {
	tests := []struct {
		cfg  otel.Config
		want bool
	}{
		{cfg: otel.Config{}, want: false},
		{cfg: otel.Config{Endpoint: "http://collector:4318"}, want: true},
		{cfg: otel.Config{Endpoint: "http://collector:4318", Enabled: "false"}, want: false},
		{cfg: otel.Config{Endpoint: "  "}, want: false},
	}
	for _, tt := range tests {
		if got := tt.cfg.Active(); got != tt.want {
			t.Fatalf("%+v.Active() = %v, want %v", tt.cfg, got, tt.want)
		}
	}
}
