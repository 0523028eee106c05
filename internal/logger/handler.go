package logger

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// replaceLevel renders the custom trace level instead of "DEBUG-4"
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level <= traceLevelValue {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

// newTextHandler builds the console handler. Timestamps are dropped.
func newTextHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return replaceLevel(groups, a)
		},
	})
}

// newJSONHandler builds the file handler with RFC3339 timestamps in tz
func newJSONHandler(w io.Writer, level slog.Level, tz *time.Location) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey && tz != nil {
				if t, ok := a.Value.Any().(time.Time); ok {
					return slog.String(slog.TimeKey, t.In(tz).Format(time.RFC3339))
				}
			}
			return replaceLevel(groups, a)
		},
	})
}

// NewSlogLogger returns a JSON Logger writing to w, for tests and tools.
// A nil writer means stdout; a nil tz means UTC.
func NewSlogLogger(w io.Writer, level LogLevel, tz *time.Location) Logger {
	if w == nil {
		w = os.Stdout
	}
	if tz == nil {
		tz = time.UTC
	}
	l := parseSlogLevel(level)
	return &moduleLogger{
		logger: slog.New(newJSONHandler(w, l, tz)),
		level:  l,
	}
}
