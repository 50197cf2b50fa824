// Package logging provides structured logging for ulink-setup using slog.
//
// Diagnostics (warnings about corrupt configs, missing skill bundles, debug
// traces of subprocess calls) go through slog to stderr. User-facing progress
// lines are written directly to stdout by the installer and do not pass
// through this package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:    slog.LevelWarn,
//		Format:   logging.FormatText,
//		Output:   os.Stderr,
//		Redactor: paths.NewRedactor(home),
//	})
//	logger.Warn("skill source not found", "path", src)
//
// Attributes named path, dest, source or file are shown with the home
// directory collapsed to "~" in text output.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	logger := logging.ForTest(t)
package logging
