// Package simulate implements the simulate command line: run one experiment
// or list the catalog, in process or against a simulation server.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	entrypoint "github.com/Estagiarius/simulajuls/internal/platform/cmd"
	"github.com/Estagiarius/simulajuls/internal/platform/config"
	apperrors "github.com/Estagiarius/simulajuls/internal/platform/errors"
	platformgrpc "github.com/Estagiarius/simulajuls/internal/platform/grpc"
	"github.com/Estagiarius/simulajuls/internal/platform/logging"
	"github.com/Estagiarius/simulajuls/internal/platform/timeouts"
	"github.com/Estagiarius/simulajuls/internal/services/simulation/api/grpcapi"
	"github.com/Estagiarius/simulajuls/internal/services/simulation/runner"
	"github.com/Estagiarius/simulajuls/internal/simulation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time.
var Version = "dev"

// Config holds the defaults of the persistent flags. Variables are read
// with the SIMULAJULS_ prefix.
type Config struct {
	GRPCAddr string `env:"SIMULATE_GRPC_ADDR"`
	Locale   string `env:"DEFAULT_LOCALE" envDefault:"pt-BR"`
	Output   string `env:"SIMULATE_OUTPUT" envDefault:"json"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnvPrefixed(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Execute runs the command line with args and reports the first error.
// Cobra has already printed it to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return err
	}
	root := NewRootCommand(cfg)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

type rootOptions struct {
	grpcAddr string
	locale   string
	output   string
	logLevel string
}

// NewRootCommand builds the command tree with cfg as flag defaults.
func NewRootCommand(cfg Config) *cobra.Command {
	opts := &rootOptions{
		grpcAddr: cfg.GRPCAddr,
		locale:   cfg.Locale,
		output:   cfg.Output,
		logLevel: cfg.LogLevel,
	}

	root := &cobra.Command{
		Use:          "simulate",
		Short:        "Run science experiment simulations",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return validOutput(opts.output)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.grpcAddr, "grpc-addr", opts.grpcAddr, "simulation server gRPC address (empty runs in process)")
	flags.StringVarP(&opts.locale, "locale", "l", opts.locale, "locale of error messages: pt-BR or en-US")
	flags.StringVarP(&opts.output, "output", "o", opts.output, "output format: json or yaml")
	flags.StringVar(&opts.logLevel, "log-level", opts.logLevel, "log level: debug, info, warn or error")

	root.AddCommand(runCmd(opts), listCmd(opts), versionCmd())
	return root
}

func runCmd(opts *rootOptions) *cobra.Command {
	var file string
	var sets []string

	c := &cobra.Command{
		Use:   "run <domain>/<experiment>",
		Short: "Run one experiment and print its result",
		Example: `  simulate run biology/mendelian-genetics --set parent1_genotype=Aa --set parent2_genotype=Aa
  simulate run physics/projectile-launch -f launch.yaml --set output_units.range_unit=km`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := simulation.ParseKey(args[0])
			if !ok {
				return fmt.Errorf("experiment %q: want <domain>/<experiment>", args[0])
			}

			params := map[string]any{}
			if file != "" {
				if err := config.LoadYAMLFile(file, &params); err != nil {
					return err
				}
				if params == nil {
					params = map[string]any{}
				}
			}
			for _, assignment := range sets {
				if err := setParam(params, assignment); err != nil {
					return err
				}
			}

			return withSimulator(cmd.Context(), opts, func(ctx context.Context, sim runner.Simulator) error {
				result, err := sim.Run(ctx, key.Domain, key.Experiment, params, opts.locale)
				if err != nil {
					return localizeError(err, opts.locale)
				}
				return writeOutput(cmd.OutOrStdout(), result, opts.output)
			})
		},
	}
	c.Flags().StringVarP(&file, "file", "f", "", "YAML or JSON file with experiment parameters (- for stdin)")
	c.Flags().StringArrayVarP(&sets, "set", "s", nil, "parameter as key=value; dotted keys set nested objects")
	return c
}

func listCmd(opts *rootOptions) *cobra.Command {
	var category string

	c := &cobra.Command{
		Use:   "list",
		Short: "List the experiment catalog and the runnable simulations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSimulator(cmd.Context(), opts, func(ctx context.Context, sim runner.Simulator) error {
				listing, err := sim.ListExperiments(ctx, category)
				if err != nil {
					return localizeError(err, opts.locale)
				}
				return writeOutput(cmd.OutOrStdout(), listing, opts.output)
			})
		},
	}
	c.Flags().StringVarP(&category, "category", "c", "", "only experiments in this category, e.g. Física")
	return c
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "simulate %s\n", Version)
			return err
		},
	}
}

// withSimulator picks the in-process registry or a remote server and runs fn
// under the command's telemetry.
func withSimulator(ctx context.Context, opts *rootOptions, fn func(context.Context, runner.Simulator) error) error {
	logger, err := entrypoint.NewLogger(entrypoint.ServiceSimulate, logging.Config{
		Level:  opts.logLevel,
		Format: logging.FormatConsole,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	options := entrypoint.RunOptions{Logger: logger}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceSimulate, options, func(ctx context.Context) error {
		if opts.grpcAddr == "" {
			return fn(ctx, runner.Local{Registry: simulation.Default()})
		}

		conn, err := platformgrpc.Dial(ctx, platformgrpc.DialConfig{
			Addr:    opts.grpcAddr,
			Service: grpcapi.ServiceName,
			Timeout: timeouts.GRPCDial,
			Logger:  logger,
		})
		if err != nil {
			return fmt.Errorf("connect to simulation server at %s: %w", opts.grpcAddr, err)
		}
		defer func() { _ = conn.Close() }()
		logger.Debug("using remote simulation service", zap.String("addr", opts.grpcAddr))
		return fn(ctx, runner.Remote{Client: grpcapi.NewClient(conn), Timeout: timeouts.Request})
	})
}

// localizeError renders domain errors in locale and passes others through.
func localizeError(err error, locale string) error {
	appErr, ok := apperrors.FromError(err)
	if !ok {
		return err
	}
	msg, _ := apperrors.Localize(appErr, locale)
	return errors.New(msg)
}

func validOutput(format string) error {
	switch strings.ToLower(format) {
	case outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("output format %q: want %s or %s", format, outputJSON, outputYAML)
	}
}
