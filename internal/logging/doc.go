// Package logging provides structured logging for the spectator CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. All loggers are based on the standard
// library's [log/slog] package. Attribute values that look like API keys or
// tokens are masked before they reach any destination.
//
// # Process Logger
//
// CLI entry points assemble the process logger with [Setup], which builds a
// console handler and an optional JSON file mirror behind one logger:
//
//	logger, cleanup, err := logging.Setup(logging.Options{
//		Level:    logging.LevelFromVerbosity(verbosity),
//		Format:   logging.FormatText,
//		FilePath: logFile,
//	})
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("configured", "platform", "cursor")
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Quiet Mode
//
// Use [NewDiscard] when log output should be suppressed entirely:
//
//	logger := logging.NewDiscard()
package logging
