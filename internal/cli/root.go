package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vijay-prabhu/applicant-triage/internal/config"
	"github.com/vijay-prabhu/applicant-triage/internal/logging"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath string
	outputFmt  string
	logLevel   string

	logger = slog.New(slog.DiscardHandler)
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Score and classify university applicants by funding capability",
	Long: `triage reads an applicant intake export (csv, xlsx or json), removes
repeated submissions and scores every applicant on how likely they are to
fund their own studies.

It provides:
  - A hand-tuned, auditable point model with a reason for every point
  - Priority categories for scholarship outreach
  - Exports with the original columns plus score, category and reasons
  - MCP server for AI assistant integration`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: ~/.config/triage/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table",
		"output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error); overrides the config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging builds the CLI logger. Logs go to stderr so stdout stays
// clean for json and yaml output.
func setupLogging(cmd *cobra.Command, args []string) error {
	level := logLevel
	if level == "" {
		if cfg, err := loadConfig(); err == nil {
			level = cfg.Logging.Level
		}
	}

	logger = logging.NewLogger(cmd.ErrOrStderr(), logging.Options{
		Level: level,
		Color: isTerminal(os.Stderr),
	})
	slog.SetDefault(logger)
	return nil
}

// loadConfig reads the config file. Without --config a missing default file
// falls back to the built-in defaults.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), nil
	}
	return config.LoadOrDefault(path)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "triage %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", buildTime)
	},
}
