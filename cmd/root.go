package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mj1618/desktop-vision/internal/capture"
	"github.com/mj1618/desktop-vision/internal/config"
	"github.com/mj1618/desktop-vision/internal/logging"
	"github.com/mj1618/desktop-vision/internal/output"
	"github.com/mj1618/desktop-vision/internal/platform"
	"github.com/mj1618/desktop-vision/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "desktop-vision",
	Short: "List and capture desktop windows and displays",
	Long: `desktop-vision lets AI agents see the desktop. It lists open windows and
captures windows or whole displays to PNG files, either from the command line
or as tools of a Model Context Protocol (MCP) server.`,
	SilenceUsage: true,
}

// Process-wide state set up by the root command before any subcommand runs.
var (
	cfg    = config.Default()
	logger = slog.New(slog.DiscardHandler)
)

// newProvider is swapped out in tests.
var newProvider = platform.NewProvider

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.PersistentFlags().String("config", "", "Config file (default: $XDG_CONFIG_HOME/desktop-vision/config.yaml)")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default from config: info)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text, json (default from config: text)")
	rootCmd.PersistentPreRunE = setup
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	flags := rootCmd.PersistentFlags()

	path, _ := flags.GetString("config")
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if flags.Changed("log-level") {
		loaded.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		loaded.Log.Format, _ = flags.GetString("log-format")
	}

	// Logs go to stderr: stdout carries command output and the stdio transport.
	l, err := logging.New(cmd.ErrOrStderr(), loaded.Log.Level, loaded.Log.Format)
	if err != nil {
		return err
	}

	format, _ := flags.GetString("format")
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	output.OutputFormat = f
	output.PrettyOutput = false
	if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
		if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
			output.PrettyOutput = true
		}
	}

	cfg = loaded
	logger = l
	return nil
}

// newService builds the capture service for the current platform.
func newService() (*capture.Service, error) {
	provider, err := newProvider()
	if err != nil {
		return nil, err
	}
	return capture.NewService(provider, capture.Options{
		Filter:    cfg.CaptureFilter(),
		OutputDir: cfg.OutputDir,
		Logger:    logger,
	}), nil
}

// printResult prints v, or returns the normalized error for a failed operation.
func printResult(cmd *cobra.Command, v any, err error) error {
	if err != nil {
		if capture.KindOf(err) == capture.KindInvalidRequest {
			return fmt.Errorf("invalid request: %w", err)
		}
		return err
	}
	return output.Fprint(cmd.OutOrStdout(), output.OutputFormat, v)
}
