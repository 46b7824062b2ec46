package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rgehrsitz/difal/internal/calculation"
	"github.com/rgehrsitz/difal/internal/config"
	"github.com/rgehrsitz/difal/internal/rates"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	settings = &config.Settings{LogLevel: "info", Format: "console"}
	logger   = zap.NewNop().Sugar()
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "difal %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// newLogger builds a production JSON logger, switching to colored console
// output at debug level
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	if lvl == zapcore.DebugLevel {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return cfg.Build()
}

// setup reads environment settings, lets flags override them, and builds
// the shared logger
func setup(cmd *cobra.Command, args []string) error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		s.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("rates") {
		s.RatesFile, _ = cmd.Flags().GetString("rates")
	}
	if err := s.Validate(); err != nil {
		return err
	}

	zl, err := newLogger(s.LogLevel)
	if err != nil {
		return err
	}
	settings = s
	logger = zl.Sugar()
	logger.Debugw("settings loaded", "level", s.LogLevel, "format", s.Format, "rates", s.RatesFile)
	return nil
}

// loadProvider returns the rate tables selected by --rates or
// DIFAL_RATES_FILE, falling back to the embedded tables
func loadProvider() (*rates.Provider, error) {
	if settings.RatesFile == "" {
		return rates.Default(), nil
	}
	p, err := rates.LoadFile(settings.RatesFile)
	if err != nil {
		return nil, err
	}
	logger.Infow("using rate file", "path", settings.RatesFile, "last_updated", p.Metadata().LastUpdated)
	return p, nil
}

// newEngine builds a calculation engine over provider that logs through
// the shared logger
func newEngine(provider *rates.Provider) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngineWithRates(provider)
	engine.SetLogger(logger)
	return engine
}

var rootCmd = &cobra.Command{
	Use:   "difal",
	Short: "ICMS DIFAL calculator CLI",
	Long: "Calculates the ICMS rate differential (DIFAL) owed on interstate operations\n" +
		"between Brazilian states, for purchases and for sales.",
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error (env DIFAL_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("rates", "", "Path to a YAML rate file (env DIFAL_RATES_FILE; default: embedded tables)")

	rootCmd.AddCommand(purchaseCmd)
	rootCmd.AddCommand(saleCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(whatIfCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
