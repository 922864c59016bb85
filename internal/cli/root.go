package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/svccat/internal/config"
	"github.com/rshade/svccat/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// Command annotations read by the root command.
const (
	// annotationInteractive marks commands that own the terminal; they log to a file.
	annotationInteractive = "svccat/interactive"
	// annotationConfigOptional marks commands that still run when the config is invalid.
	annotationConfigOptional = "svccat/config-optional"
)

type configKey struct{}

// ContextWithConfig stores the effective configuration in ctx.
func ContextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext returns the configuration stored by the root command, or the
// defaults when none was stored.
func ConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.New()
}

// NewRootCmd creates the root Cobra command for the svccat CLI.
// It loads configuration, wires up logging and tracing, and registers the
// browse, list, serve-fixtures and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
		endpoint   string
	)

	cmd := &cobra.Command{
		Use:           "svccat",
		Short:         "Browse a service catalog from the terminal",
		Long:          "svccat: search, sort and page through the services published in a catalog API",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, configPath, endpoint)
			if err != nil {
				return err
			}

			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.svccat/config.yaml)")
	cmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "catalog endpoint URL (overrides config and environment)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(NewBrowseCmd(), NewListCmd(), NewServeFixturesCmd(), newConfigCmd())

	return cmd
}

// loadConfig builds the effective configuration and stores it in the command context.
// Flags override the file and the environment.
func loadConfig(cmd *cobra.Command, path, endpoint string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if !hasAnnotation(cmd, annotationConfigOptional) {
			return nil, fmt.Errorf("loading configuration: %w", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: ignoring configuration: %v\n", err)
		}
		cfg = config.New()
	}

	if cmd.Flags().Changed("endpoint") {
		cfg.Catalog.Endpoint = endpoint
		if err = cfg.Validate(); err != nil {
			return nil, err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(ContextWithConfig(ctx, cfg))
	return cfg, nil
}

func hasAnnotation(cmd *cobra.Command, key string) bool {
	_, ok := cmd.Annotations[key]
	return ok
}

const rootCmdExample = `  # Browse the catalog interactively
  svccat browse

  # Start on page 2 of services matching "pay"
  svccat browse --search pay --page 2

  # Print one page as JSON
  svccat list --search pay --page-size 25 --output json

  # Serve the built-in demo catalog and browse it
  svccat serve-fixtures --addr :8080 &
  svccat browse --endpoint http://localhost:8080/api/services

  # Initialize configuration
  svccat config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
