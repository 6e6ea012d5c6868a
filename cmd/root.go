package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/sankaku/config"
	"github.com/s0up4200/sankaku/filter"
	"github.com/s0up4200/sankaku/sankaku"
)

var (
	cfgFile      string
	cfg          *config.Config
	logger       zerolog.Logger
	client       *sankaku.Client
	namedFilters *filter.Manager

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	anonymous bool
	strict    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sankaku",
	Short: "Browse Sankaku Complex from the command line",
	Long: `sankaku is a CLI for the Sankaku Complex API. It browses posts, AI posts,
tags, books (pools) and users, fetches single records, and lists the favorites
and recommendations of the configured account.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: closeApp,
}

// SetVersion sets the version reported by the version command
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&anonymous, "anonymous", false, "skip login even if credentials are configured")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "reject response fields the records do not declare")

	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the configuration, creates the client and logs in
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if cmd.Flags().Changed("strict") {
		cfg.Request.Strict = strict
	}

	namedFilters = filter.NewManager()
	if err := namedFilters.RegisterFilters(cfg.Filters); err != nil {
		return fmt.Errorf("invalid filters in config: %w", err)
	}

	opts := []sankaku.Option{
		sankaku.WithLogger(logger),
		sankaku.WithAPIURL(cfg.API.URL),
		sankaku.WithLoginURL(cfg.API.LoginURL),
		sankaku.WithRetries(cfg.Request.Retries),
		sankaku.WithTimeout(cfg.Request.Timeout),
		sankaku.WithRateLimit(cfg.Request.RPS, cfg.Request.RPM),
		sankaku.WithPageLimit(cfg.Request.Limit),
		sankaku.WithLang(cfg.Request.Lang),
	}
	if cfg.Request.Strict {
		opts = append(opts, sankaku.WithStrictDecoding())
	}

	client, err = sankaku.NewClient(opts...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if anonymous || !cfg.Auth.HasCredentials() {
		logger.Debug().Msg("Browsing anonymously")
		return nil
	}

	creds := sankaku.Credentials{
		Login:       cfg.Auth.Login,
		Password:    cfg.Auth.Password,
		AccessToken: cfg.Auth.AccessToken,
	}
	if err := client.Login(cmd.Context(), creds); err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}

	return nil
}

// closeApp releases the client
func closeApp(cmd *cobra.Command, args []string) error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// versionCmd prints the build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// No config or client is needed
	PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
	PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sankaku %s (built %s)\n", version, buildTime)
	},
}
