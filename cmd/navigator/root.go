package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jonathan/career-navigator/internal/api"
	"github.com/jonathan/career-navigator/internal/config"
	"github.com/jonathan/career-navigator/internal/logging"
	"github.com/jonathan/career-navigator/internal/observability"
	"github.com/jonathan/career-navigator/internal/session"
	"github.com/spf13/cobra"
)

var (
	rootConfigPath       string
	rootAPIURL           string
	rootTimeout          int
	rootRequestsPerSec   float64
	rootPollInterval     int
	rootMaxPollMinutes   int
	rootValidatePayloads bool
	rootDatabaseURL      string
	rootLogLevel         string
	rootLogFormat        string
	rootVerbose          bool
)

// application holds what every command needs once flags are resolved.
type application struct {
	cfg     config.Config
	logger  *slog.Logger
	client  *api.Client
	store   *session.Store
	printer *observability.Printer
}

var app *application

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.StringVar(&rootAPIURL, "api-url", "", "Matching API base URL (defaults to NAVIGATOR_API_URL or "+config.DefaultAPIBaseURL+")")
	flags.IntVar(&rootTimeout, "timeout", 0, "Per-request timeout in seconds")
	flags.Float64Var(&rootRequestsPerSec, "rps", 0, "Client-side request rate limit (0 disables)")
	flags.IntVar(&rootPollInterval, "poll-interval", 0, "Seconds between search status checks")
	flags.IntVar(&rootMaxPollMinutes, "max-poll-minutes", 0, "Give up polling after this many minutes (negative waits forever)")
	flags.BoolVar(&rootValidatePayloads, "validate-payloads", false, "Check API responses against the embedded JSON schemas")
	flags.StringVar(&rootDatabaseURL, "db-url", "", "PostgreSQL connection URL for the search archive (defaults to DATABASE_URL env var)")
	flags.StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&rootLogFormat, "log-format", "", "Log format: text or json")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
}

// setupApp resolves configuration and builds the shared clients.
func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.Setup(logging.Config{
		Level:   cfg.LogLevel,
		Format:  logging.Format(cfg.LogFormat),
		Output:  cmd.ErrOrStderr(),
		Verbose: cfg.Verbose,
	})
	if rootConfigPath != "" {
		logger.Debug("loaded config", slog.String("path", rootConfigPath))
	}

	client := api.New(api.Config{
		BaseURL:           cfg.APIBaseURL,
		Timeout:           cfg.Timeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger,
		ValidatePayloads:  cfg.ValidatePayloads,
	})

	app = &application{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		store:   session.New(),
		printer: observability.NewPrinter(cmd.OutOrStdout()),
	}
	return nil
}

func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if rootConfigPath != "" {
		loadedCfg, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIBaseURL = rootAPIURL
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = rootTimeout
	}
	if flags.Changed("rps") {
		cfg.RequestsPerSecond = rootRequestsPerSec
	}
	if flags.Changed("poll-interval") {
		cfg.PollIntervalSeconds = rootPollInterval
	}
	if flags.Changed("max-poll-minutes") {
		cfg.MaxPollMinutes = rootMaxPollMinutes
	}
	if flags.Changed("validate-payloads") {
		cfg.ValidatePayloads = rootValidatePayloads
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = rootDatabaseURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rootLogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = rootLogFormat
	}
	if flags.Changed("verbose") {
		cfg.Verbose = rootVerbose
	}

	// Step 3: Environment, then defaults for unset values
	cfg.ApplyEnv(os.Getenv)
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
