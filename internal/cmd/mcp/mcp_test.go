package mcp

import (
	"context"
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.GRPCAddr != "" {
		t.Fatalf("expected in-process default, got %q", cfg.GRPCAddr)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.DefaultLocale != "pt-BR" {
		t.Fatalf("expected default locale pt-BR, got %q", cfg.DefaultLocale)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("SIMULAJULS_MCP_GRPC_ADDR", "env-grpc")
	t.Setenv("SIMULAJULS_MCP_HTTP_ADDR", "env-http")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-grpc-addr", "flag-grpc", "-transport", "http", "-locale", "en-US"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.GRPCAddr != "flag-grpc" {
		t.Fatalf("expected flag grpc addr, got %q", cfg.GRPCAddr)
	}
	if cfg.HTTPAddr != "env-http" {
		t.Fatalf("expected env http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.DefaultLocale != "en-US" {
		t.Fatalf("expected locale override, got %q", cfg.DefaultLocale)
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	t.Setenv("SIMULAJULS_OTEL_ENDPOINT", "")
	cfg := Config{Transport: "smoke-signal"}
	cfg.Logging.Level = "error"
	cfg.Logging.Format = "json"
	if err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected unsupported transport error")
	}
}
