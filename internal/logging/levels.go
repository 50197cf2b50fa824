package logging

import "log/slog"

// LevelTrace is below Debug and enabled by -vv.
const LevelTrace = slog.LevelDebug - 4

// LevelFromVerbosity maps the count of -v flags to a slog level.
//
//	0 -> Warn (only warnings and errors reach stderr)
//	1 -> Info
//	2 -> Debug
//	3+ -> Trace
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}
