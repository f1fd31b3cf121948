// Package errors provides error handling conventions for the spectator CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, exit code constants
// following standard Unix conventions, and re-exports of the
// cockroachdb/errors wrapping helpers so callers need a single import.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrNoPlatformsDetected) {
//	    // nothing to configure on this machine
//	}
//
// # Exit Codes
//
// The package defines standard exit codes for CLI applications:
//
//   - ExitSuccess (0): Command completed successfully (including partial
//     success across platforms)
//   - ExitUser (1): User-related error (invalid key, nothing detected, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion
// for CLI applications. It carries an Unwrap method so [Is] and [As] can
// examine the chain:
//
//	err := errors.NewUserError(errors.ErrNoPlatformsDetected, "Install one of the supported assistants first")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Println("Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
package errors
