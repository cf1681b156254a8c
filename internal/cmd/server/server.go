// Package server parses server command flags and starts the HTTP and gRPC
// simulation APIs.
package server

import (
	"context"
	"flag"
	"strings"

	entrypoint "github.com/Estagiarius/simulajuls/internal/platform/cmd"
	"github.com/Estagiarius/simulajuls/internal/platform/logging"
	"github.com/Estagiarius/simulajuls/internal/services/simulation/app"
	"go.uber.org/zap"
)

// Config holds server command configuration.
type Config struct {
	HTTPAddr       string   `env:"SIMULAJULS_HTTP_ADDR"      envDefault:":8000"`
	GRPCAddr       string   `env:"SIMULAJULS_GRPC_ADDR"      envDefault:":8082"`
	AllowedOrigins []string `env:"SIMULAJULS_CORS_ORIGINS"   envDefault:"*" envSeparator:","`
	DefaultLocale  string   `env:"SIMULAJULS_DEFAULT_LOCALE" envDefault:"pt-BR"`
	Logging        logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	origins := strings.Join(cfg.AllowedOrigins, ",")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP API listen address")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC API listen address")
	fs.StringVar(&origins, "cors-origins", origins, "Comma-separated origins allowed by CORS (* allows any)")
	fs.StringVar(&cfg.DefaultLocale, "locale", cfg.DefaultLocale, "Locale of error messages when a request names none")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "Log format: json or console")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.AllowedOrigins = splitList(origins)
	return cfg, nil
}

// Run starts the simulation APIs and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	logger, err := entrypoint.NewLogger(entrypoint.ServiceServer, cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	options := entrypoint.RunOptions{Logger: logger}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceServer, options, func(ctx context.Context) error {
		logger.Info("starting simulation server",
			zap.String("http_addr", cfg.HTTPAddr),
			zap.String("grpc_addr", cfg.GRPCAddr),
			zap.Strings("cors_origins", cfg.AllowedOrigins),
			zap.String("locale", cfg.DefaultLocale),
		)
		return app.Run(ctx, app.Config{
			HTTPAddr:       cfg.HTTPAddr,
			GRPCAddr:       cfg.GRPCAddr,
			AllowedOrigins: cfg.AllowedOrigins,
			DefaultLocale:  cfg.DefaultLocale,
			Logger:         logger,
		})
	})
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
