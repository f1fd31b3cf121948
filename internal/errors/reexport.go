package errors

import "github.com/cockroachdb/errors"

// Re-exports so callers can import this package alone for both the CLI
// error types and the wrapping helpers.
var (
	New   = errors.New
	Newf  = errors.Newf
	Wrap  = errors.Wrap
	Wrapf = errors.Wrapf
	Is    = errors.Is
	As    = errors.As
	Join  = errors.Join
)
