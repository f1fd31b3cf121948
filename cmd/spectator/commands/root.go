// Package commands implements the CLI commands for spectator.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spectatorcontext/spectator-cli/internal/config"
	"github.com/spectatorcontext/spectator-cli/internal/errors"
	"github.com/spectatorcontext/spectator-cli/internal/logging"
	"github.com/spectatorcontext/spectator-cli/internal/paths"
)

// apiKeyFlag holds the value of the --api-key flag.
var apiKeyFlag string

// platformsFlag holds the value of the --platforms flag.
var platformsFlag []string

// scopeFlag holds the value of the --scope flag. Empty means "use the
// configured default", which is global.
var scopeFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// cfg is the CLI configuration loaded during initialization. Nil until
// initConfig has run.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// logCleanup closes the log file mirror, when one was opened.
var logCleanup func() error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&apiKeyFlag, "api-key", "k", "",
		"spectator API key (overrides environment and keyring)")
	rootCmd.PersistentFlags().StringSliceVarP(&platformsFlag, "platforms", "p", nil,
		`target platform(s): `+strings.Join(paths.Platforms(), ", ")+`, or "all"`)
	rootCmd.PersistentFlags().StringVarP(&scopeFlag, "scope", "s", "",
		`config scope: global, project (default "global")`)
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("spectator version {{.Version}}\n")

	// Errors are reported by Execute, with exit codes attached
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "spectator [api-key]",
	Short: "Connect AI assistants to your Spectator voice memory",
	Long: `spectator configures AI coding assistants to use the Spectator
voice-memory MCP server.

It writes the spectator-voice-memory server entry into the MCP config
files of Claude Desktop, Claude Code, Cursor, Windsurf, VS Code, and
Cline. Existing entries for other servers are never touched, and every
overwrite of a previous spectator entry is preceded by a backup.

Run it with just your API key to set up every detected assistant:`,
	Example: `  # Configure all detected assistants
  spectator YOUR_API_KEY

  # Configure specific assistants
  spectator setup --platforms cursor,claude-code --api-key YOUR_API_KEY

  # Check what is configured
  spectator validate

  # Remove the entry everywhere
  spectator remove`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return validatePersistentFlags(cmd)
	},
	// A bare invocation, with or without an api key argument, is setup
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(cmd.Context(), newRunEnv(cmd), args)
	},
}

// setupLogging builds the process logger from the verbosity flags and puts
// it on the command context.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"),
			"choose one of -q or -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence over the env var
		if v == 0 {
			switch os.Getenv("SPECTATOR_DEBUG") {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	logger, cleanup, err := logging.Setup(logging.Options{
		Level:    level,
		Format:   logging.Format(logFormat),
		Console:  cmd.ErrOrStderr(),
		FilePath: logFile,
	})
	if err != nil {
		return errors.NewUserError(err, "check the --log-file path")
	}
	logCleanup = cleanup

	cmd.SetContext(logging.NewContext(cmd.Context(), logger))
	return nil
}

// validatePersistentFlags rejects bad flag values before any command runs.
func validatePersistentFlags(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	if scopeFlag != "" {
		if _, err := paths.ParseScope(scopeFlag); err != nil {
			return errors.NewUserError(err, `valid scopes: global, project`)
		}
	}

	var invalid []string
	for _, p := range platformsFlag {
		if p != platformsAll && !paths.ValidPlatform(p) {
			invalid = append(invalid, p)
		}
	}
	if len(invalid) > 0 {
		err := errors.Newf("invalid platform(s): %s (valid: %s)",
			strings.Join(invalid, ", "),
			strings.Join(paths.Platforms(), ", "))
		return errors.NewUserError(err, "Run 'spectator --help' to see valid platforms")
	}

	return nil
}

// Execute runs the root command and reports its error. Errors that carry
// no message of their own were already reported by the command.
func Execute() error {
	err := rootCmd.Execute()

	if logCleanup != nil {
		_ = logCleanup()
	}

	if err == nil {
		return nil
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if exitErr != nil && exitErr.Suggestion != "" {
		fmt.Fprintln(os.Stderr, exitErr.Suggestion)
	}
	return err
}
