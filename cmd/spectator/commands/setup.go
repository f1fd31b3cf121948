package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spectatorcontext/spectator-cli/internal/apikey"
	"github.com/spectatorcontext/spectator-cli/internal/config"
	"github.com/spectatorcontext/spectator-cli/internal/errors"
	"github.com/spectatorcontext/spectator-cli/internal/mcpfile"
	"github.com/spectatorcontext/spectator-cli/internal/platform"
)

// Package-level flag variables for the setup command.
var (
	setupAuth       string
	setupSaveKey    bool
	setupSkipVerify bool
)

func init() {
	setupCmd.Flags().StringVar(&setupAuth, "auth", "",
		`wire form of the entry: url, header (default "url")`)
	setupCmd.Flags().BoolVar(&setupSaveKey, "save-key", false,
		"store the API key in the OS keyring after a successful run")
	setupCmd.Flags().BoolVar(&setupSkipVerify, "skip-verify", false,
		"skip the remote API key check")
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup [api-key]",
	Short: "Write the spectator entry into your AI assistants",
	Long: `Configure detected AI assistants to use the Spectator voice-memory
MCP server.

The API key is resolved from, in order: the --api-key flag, the bare
argument, the SPECTATOR_API_KEY environment variable, a .env file in
the working directory, the OS keyring, and finally an interactive
prompt. Existing entries for other MCP servers are preserved, and any
previous spectator entry is backed up before being overwritten.

By default every detected assistant is configured. Name specific ones
with --platforms; naming an assistant that is not installed skips it
with a warning.

Examples:
  # Configure everything that is installed
  spectator setup YOUR_API_KEY

  # Only Cursor, project-local config
  spectator setup --platforms cursor --scope project

  # Bearer-header entry, and remember the key for next time
  spectator setup --auth header --save-key`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(cmd.Context(), newRunEnv(cmd), args)
	},
}

// runSetup configures the target platforms. Fatal errors (no key, no
// platforms, every platform failed) return with exit code 1; individual
// platform failures are reported and skipped.
func runSetup(ctx context.Context, e runEnv, args []string) error {
	if err := e.requireResolver(); err != nil {
		return err
	}

	key, source, err := resolveKey(e, args)
	if err != nil {
		return err
	}

	targets, skipped, err := resolveTargets(e)
	if err != nil {
		return err
	}
	for _, id := range skipped {
		warnColor.Fprintf(e.Out, "⚠ %s: not detected, skipping\n", id)
	}

	if !setupSkipVerify && (e.Config == nil || e.Config.Verify) {
		if err := verifyKey(ctx, e, key); err != nil {
			return err
		}
	}

	entry, err := wireEntry(e, key)
	if err != nil {
		return err
	}

	scope, err := effectiveScope(e)
	if err != nil {
		return errors.NewUserError(err, "valid scopes: global, project")
	}

	e.Log.Debug("starting setup",
		"platforms", len(targets),
		"scope", scope,
		"key_source", source,
	)

	var configured, updated, failed int
	var backups []string
	for _, desc := range targets {
		adapter := platform.NewAdapter(desc, e.Resolver, e.Fsys, e.Log)
		res, err := adapter.Configure(entry, scope)
		if err != nil {
			failed++
			failColor.Fprintf(e.Out, "✗ %s: %v\n", desc.DisplayName, err)
			e.Log.Error("configure failed", "platform", desc.ID, "error", err)
			continue
		}

		configured++
		verb := "configured"
		if res.Updated {
			updated++
			verb = "updated"
		}
		okColor.Fprintf(e.Out, "✓ %s %s\n", desc.DisplayName, verb)
		dimColor.Fprintf(e.Out, "  %s\n", res.Path)
		if res.BackupPath != "" {
			backups = append(backups, res.BackupPath)
		}
	}

	fmt.Fprintf(e.Out, "\n%d of %d platform(s) configured.\n", configured, len(targets))
	if len(backups) > 0 {
		fmt.Fprintf(e.Out, "%d previous config(s) backed up next to the originals.\n", len(backups))
	}
	if configured > 0 {
		fmt.Fprintln(e.Out, "Restart the affected assistants to pick up the spectator-voice-memory server.")
	}

	if setupSaveKey && configured > 0 {
		if err := apikey.Store(key); err != nil {
			warnColor.Fprintf(e.Out, "⚠ could not store the key in the system keyring: %v\n", err)
		} else {
			fmt.Fprintln(e.Out, "API key stored in the system keyring.")
		}
	}

	if configured == 0 {
		return errors.NewUserError(errors.ErrAllPlatformsFailed, "Run: spectator doctor")
	}
	return nil
}

// resolveKey walks the key resolution chain and falls back to an
// interactive prompt on a terminal. A malformed key from any source is
// fatal; the user plainly meant that key to be used.
func resolveKey(e runEnv, args []string) (string, apikey.Source, error) {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}

	key, source, err := apikey.Resolve(apikey.Options{
		Flag:    apiKeyFlag,
		Arg:     arg,
		Fsys:    e.Fsys,
		WorkDir: e.Resolver.WorkDir,
	})
	if err == nil {
		return key, source, nil
	}
	if !errors.Is(err, apikey.ErrKeyNotFound) {
		return "", "", errors.NewUserError(err, "pass a valid key with --api-key")
	}

	if !e.Prompter.IsTTY() {
		return "", "", errors.NewUserError(err,
			"pass the key with --api-key or set "+apikey.EnvVar)
	}

	entered, err := e.Prompter.Secret("Enter your Spectator API key")
	if err != nil {
		return "", "", errors.NewUserError(err, "pass the key with --api-key instead")
	}
	entered = strings.TrimSpace(entered)
	if err := apikey.Validate(entered); err != nil {
		return "", "", errors.NewUserError(err,
			"find your key in the Spectator dashboard under Settings")
	}
	return entered, apikey.SourcePrompt, nil
}

// verifyKey checks the key against the server. A rejected key is fatal; an
// unreachable server is only worth a warning, since the entry works offline
// and the outage is probably transient.
func verifyKey(ctx context.Context, e runEnv, key string) error {
	err := apikey.Verify(ctx, nil, key)
	if err == nil {
		okColor.Fprintln(e.Out, "✓ API key verified")
		return nil
	}

	if errors.Is(err, apikey.ErrKeyRejected) {
		return errors.NewUserError(err,
			"check the key in the Spectator dashboard, or pass a different one with --api-key")
	}

	var unavailable *apikey.VerifyUnavailableError
	if errors.As(err, &unavailable) {
		warnColor.Fprintf(e.Out, "⚠ could not verify the API key (%v); continuing\n", unavailable.Unwrap())
		e.Log.Warn("key verification unavailable", "error", err)
		return nil
	}
	return err
}

// wireEntry builds the MCP entry in the requested wire form.
func wireEntry(e runEnv, key string) (*mcpfile.Entry, error) {
	form := setupAuth
	if form == "" && e.Config != nil {
		form = e.Config.Auth
	}

	switch form {
	case "", config.AuthURL:
		return mcpfile.RemoteEntry(key), nil
	case config.AuthHeader:
		return mcpfile.HeaderEntry(key), nil
	default:
		return nil, errors.NewUserError(errors.Newf("invalid auth mode %q", form),
			"valid values: url, header")
	}
}
