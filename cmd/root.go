package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/agentreg-cli/internal/config"
	"github.com/KaramelBytes/agentreg-cli/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "agentreg",
	Short: "agentreg: regress agent accuracy on time, cost and task complexity",
	Long: `agentreg reads a semicolon-delimited export of AI agent runs, fits an ordinary
least squares model of accuracy_score on execution time, cost and task
complexity, prints the fit summary and renders diagnostic plots.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.agentreg/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal here: commands that need config load it again and fail properly
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// ensureConfig returns the loaded configuration, loading it if startup failed
// or was skipped (as in tests that call rootCmd.Execute directly).
func ensureConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return c, nil
}

func newLogger(c *cfgpkg.Global) *slog.Logger {
	level := logging.LevelWarn
	if c != nil && c.LogLevel != "" {
		level = c.LogLevel
	}
	if debug {
		level = logging.LevelDebug
	}
	return logging.New(os.Stderr, level)
}
