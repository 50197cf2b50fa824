// Package errors provides error handling conventions for ulink-setup.
//
// It re-exports the constructors and inspectors of
// github.com/cockroachdb/errors so that every package wraps errors the same
// way, and adds an ExitError type that carries a process exit code.
//
// # Exit Codes
//
//   - ExitSuccess (0): command completed, including "nothing selected"
//   - ExitUser (1): invalid flags or configuration
//   - ExitSystem (2): filesystem or subprocess failure during setup
//   - ExitInterrupted (130): the selector was interrupted with Ctrl+C
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := errors.NewUserError(errors.ErrUnknownPlatform, "Run: ulink-setup status")
//	os.Exit(errors.CodeOf(err))
package errors
