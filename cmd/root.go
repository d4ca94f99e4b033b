package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/s0up4200/cinebrowse/catalog"
	"github.com/s0up4200/cinebrowse/config"
	"github.com/s0up4200/cinebrowse/filter"
	"github.com/s0up4200/cinebrowse/tmdb"
)

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	tmdbClient    *tmdb.Client
	catalogSvc    *catalog.Service
	filterManager *filter.Manager
	formatter     = catalog.NewConsoleFormatter()

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cinebrowse",
	Short: "Browse movies from The Movie Database",
	Long: `cinebrowse is a CLI tool for browsing popular, top rated and genre listings
from The Movie Database, searching for titles, and keeping a watchlist and
reviews in an interactive shell.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records build information for the version and update commands
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// skipInit is used by commands that need neither config nor a TMDB client
func skipInit(*cobra.Command, []string) error {
	return nil
}

// initializeApp loads configuration and wires the TMDB client, catalog and filters
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	opts := []tmdb.Option{
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithTimeout(cfg.TMDB.Timeout),
	}
	if cfg.TMDB.Language != "" {
		opts = append(opts, tmdb.WithLanguage(cfg.TMDB.Language))
	}

	tmdbClient, err = tmdb.NewClient(cfg.TMDB.Token, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	catalogSvc = catalog.NewService(tmdbClient, logger, catalog.WithMapper(catalog.Mapper{
		ImageBaseURL:   cfg.TMDB.ImageBaseURL,
		PlaceholderURL: cfg.TMDB.PlaceholderURL,
	}))

	filterManager = filter.NewManager()
	presets := make(map[string]string, len(cfg.Filter.Presets))
	for name, preset := range cfg.Filter.Presets {
		presets[name] = preset.Expression
	}
	if err := filterManager.RegisterFilters(presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	logger.Debug().
		Str("base_url", cfg.TMDB.BaseURL).
		Int("presets", len(presets)).
		Msg("Initialized")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
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

	var out io.Writer
	if cfg.Format == "json" {
		out = os.Stderr
	} else {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
		}
	}

	if cfg.File.Path != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		})
	}

	return zerolog.New(out).With().Timestamp().Logger()
}
