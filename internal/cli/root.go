package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/akolliy1/apartment-search-llm/internal/config"
)

var (
	// Version information
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"

	// Colors
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow)
	infoColor  = color.New(color.FgCyan)
	debugColor = color.New(color.FgMagenta)

	// Status messages go to stderr; stdout carries protocol output only.
	// For testing - allows redirecting output
	messageOutput io.Writer = os.Stderr
)

// rootOptions holds state shared by every command of one root
type rootOptions struct {
	cfgFile string
	noColor bool
	viper   *viper.Viper
}

// newRootCmd builds the command tree. Running the root without a
// subcommand serves requests, like "serve".
func newRootCmd() *cobra.Command {
	opts := &rootOptions{viper: viper.New()}

	cmd := &cobra.Command{
		Use:   "location-server",
		Short: "Location tools over line-delimited JSON on stdio",
		Long: `location-server answers location requests read from stdin, one JSON
object per line, and writes one JSON response per line to stdout.

Tools: geocode_location, normalize_location, calculate_distance.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			return opts.initConfig()
		},
		RunE:          func(cmd *cobra.Command, args []string) error { return runServe(cmd, opts) },
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is ./location-server.yaml)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("gazetteer", "", "YAML or TOML file with extra places and aliases")
	flags.String("transport", config.TransportLine, "stdio protocol for serving (line, mcp)")

	// Bind flags to viper
	for _, name := range []string{"verbose", "log-level", "log-format", "gazetteer", "transport"} {
		_ = opts.viper.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(
		newServeCmd(opts),
		newCallCmd(opts),
		newToolsCmd(opts),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		Error("%v", err)
		return err
	}
	return nil
}

// SetVersion sets the version information
func SetVersion(v, c, b string) {
	version = v
	commit = c
	buildDate = b
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate)
}

// initConfig reads the .env file, config file and LOCATION_* variables
func (o *rootOptions) initConfig() error {
	if err := config.LoadEnvFiles(); err != nil {
		Warn("%v", err)
	}

	config.SetDefaults(o.viper)

	if o.cfgFile != "" {
		o.viper.SetConfigFile(o.cfgFile)
	} else {
		o.viper.AddConfigPath(".")
		o.viper.SetConfigType("yaml")
		o.viper.SetConfigName("location-server")
	}

	if err := o.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	Debug(o.viper.GetBool("verbose"), "Using config file: %s", o.viper.ConfigFileUsed())
	return nil
}

// load returns the validated configuration for the current invocation
func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.viper)
}

// Helper functions for consistent output

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Fprintln(messageOutput, errorColor.Sprintf("✗ "+format, args...))
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	fmt.Fprintln(messageOutput, warnColor.Sprintf("⚠ "+format, args...))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Fprintln(messageOutput, infoColor.Sprintf("ℹ "+format, args...))
}

// Debug prints a debug message if verbose is set
func Debug(verbose bool, format string, args ...interface{}) {
	if verbose {
		fmt.Fprintln(messageOutput, debugColor.Sprintf("» "+format, args...))
	}
}
