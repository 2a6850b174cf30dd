// Package slogx builds the service logger and carries request-scoped
// loggers through a context.
package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Redacted replaces the value of any attribute named in Config.Redact.
const Redacted = "[REDACTED]"

// DefaultRedact lists attribute keys that must never reach the log.
var DefaultRedact = []string{"password", "confirmPassword", "secret", "secret_hash", "otpCode", "code_hash"}

type Config struct {
	Service string
	Version string
	Env     string // dev, staging, prod, test
	Level   string // debug, info, warn, error
	Format  string // json, text

	// Redact is matched case-insensitively against attribute keys at any
	// group depth. Nil means DefaultRedact; an empty slice disables it.
	Redact []string

	// Output defaults to stdout.
	Output io.Writer
}

// New returns the service logger and installs it as slog's default.
func New(cfg Config) *slog.Logger {
	redact := cfg.Redact
	if redact == nil {
		redact = DefaultRedact
	}

	opts := &slog.HandlerOptions{
		AddSource:   cfg.Env == "dev",
		Level:       ParseLevel(cfg.Level),
		ReplaceAttr: redactor(redact),
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", cfg.Service),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	slog.SetDefault(logger)
	return logger
}

func redactor(keys []string) func([]string, slog.Attr) slog.Attr {
	if len(keys) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[strings.ToLower(k)] = struct{}{}
	}
	return func(_ []string, a slog.Attr) slog.Attr {
		if _, ok := set[strings.ToLower(a.Key)]; ok {
			return slog.String(a.Key, Redacted)
		}
		return a
	}
}

// ParseLevel maps a level name to slog.Level. Unknown names are info.
func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
