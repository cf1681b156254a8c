package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Addr   string `env:"SIMULAJULS_TEST_ADDR" envDefault:":8000"`
	Points int    `env:"SIMULAJULS_TEST_POINTS" envDefault:"100"`
}

type prefixedTestConfig struct {
	Locale string `env:"TEST_LOCALE" envDefault:"pt-BR"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != ":8000" || cfg.Points != 100 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("SIMULAJULS_TEST_POINTS", "many")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvPrefixed(t *testing.T) {
	t.Setenv("SIMULAJULS_TEST_LOCALE", "en-US")

	var cfg prefixedTestConfig
	if err := ParseEnvPrefixed(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Locale != "en-US" {
		t.Fatalf("Locale = %q, want en-US", cfg.Locale)
	}
}
