// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/Estagiarius/simulajuls/internal/platform/cmd"
	"github.com/Estagiarius/simulajuls/internal/platform/logging"
	"github.com/Estagiarius/simulajuls/internal/services/mcp/service"
	"go.uber.org/zap"
)

// Config holds MCP command configuration.
type Config struct {
	// GRPCAddr points at a running simulation server. Empty simulates in process.
	GRPCAddr      string `env:"SIMULAJULS_MCP_GRPC_ADDR"`
	HTTPAddr      string `env:"SIMULAJULS_MCP_HTTP_ADDR"  envDefault:"localhost:8081"`
	Transport     string `env:"SIMULAJULS_MCP_TRANSPORT"  envDefault:"stdio"`
	DefaultLocale string `env:"SIMULAJULS_DEFAULT_LOCALE" envDefault:"pt-BR"`
	Logging       logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "Simulation server gRPC address (empty runs simulations in process)")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.DefaultLocale, "locale", cfg.DefaultLocale, "Locale of tool error messages when a call names none")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level: debug, info, warn or error")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter. Logs go to stderr so they never mix
// with the stdio transport.
func Run(ctx context.Context, cfg Config) error {
	logger, err := entrypoint.NewLogger(entrypoint.ServiceMCP, cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	options := entrypoint.RunOptions{Logger: logger}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceMCP, options, func(ctx context.Context) error {
		logger.Info("starting MCP server",
			zap.String("transport", cfg.Transport),
			zap.String("grpc_addr", cfg.GRPCAddr),
		)
		return service.Run(ctx, service.Config{
			GRPCAddr:      cfg.GRPCAddr,
			Transport:     service.TransportKind(cfg.Transport),
			HTTPAddr:      cfg.HTTPAddr,
			DefaultLocale: cfg.DefaultLocale,
			Logger:        logger,
		})
	})
}
