package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/vizloom-cli/internal/config"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	logLevel string
	noColor  bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "vizloom",
	Short: "VizLoom CLI: recommend and render charts for tabular data",
	Long: `VizLoom classifies the columns of a CSV, TSV or XLSX file, recommends chart
types for a column selection, checks which concrete chart variants fit, and
renders them as HTML, JSON bundles or terminal previews.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default is ~/.vizloom/config.yaml)")
	f.BoolVar(&debug, "debug", false, "enable debug logging")
	f.StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	f.BoolVar(&noColor, "no-color", false, "disable colored terminal output")
	addSourceFlags(rootCmd)
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{SampleRows: 5, LogLevel: "warn"}
	}
	cfg = c
	if noColor || os.Getenv("NO_COLOR") != "" {
		pterm.DisableStyling()
	}
	setupLogging(c.LogLevel)
}

func setupLogging(configured string) {
	level := slog.LevelWarn
	name := configured
	if logLevel != "" {
		name = logLevel
	}
	switch strings.ToLower(name) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
