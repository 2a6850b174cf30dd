package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/quizbank/pkg/httpx"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Port)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "quizbank.db", cfg.DatabaseFile)
	require.Equal(t, "memory", cfg.LedgerBackend)
	require.Equal(t, "log", cfg.Notifier)
	require.Equal(t, 10*time.Minute, cfg.OTPTTL)
	require.Equal(t, 6, cfg.OTPDigits)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.Equal(t, time.Hour, cfg.PendingRetention)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.True(t, cfg.StudentListEnabled)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	require.Equal(t, 587, cfg.SMTP.Port)
	require.Equal(t, "starttls", cfg.SMTP.TLS)
	require.Empty(t, cfg.OTelEndpoint)
	require.Equal(t, httpx.DefaultRateLimits(), cfg.RateLimits)
}

func TestConfigRateLimitOverrides(t *testing.T) {
	cfg, err := ParseConfig(env.Options{Environment: map[string]string{
		"RATELIMIT_STRICT_REQUESTS": "1000",
		"RATELIMIT_STRICT_BURST":    "500",
		"RATELIMIT_MODERATE_WINDOW": "30s",
	}})
	require.NoError(t, err)

	require.Equal(t, 1000, cfg.RateLimits.Strict.RequestsPerWindow)
	require.Equal(t, 500, cfg.RateLimits.Strict.Burst)
	require.Equal(t, time.Minute, cfg.RateLimits.Strict.Window)
	require.Equal(t, 30*time.Second, cfg.RateLimits.Moderate.Window)
	require.Equal(t, httpx.LenientLimit, cfg.RateLimits.Lenient)
}

func TestConfigFromEnvironment(t *testing.T) {
	cfg, err := ParseConfig(env.Options{Environment: map[string]string{
		"PORT":                 "9000",
		"DATABASE_DRIVER":      "postgres",
		"DATABASE_URL":         "postgres://u:p@db/quizbank",
		"LEDGER_BACKEND":       "store",
		"NOTIFIER":             "smtp",
		"SMTP_HOST":            "smtp.example.com",
		"SMTP_PORT":            "465",
		"SMTP_USERNAME":        "bot@example.com",
		"SMTP_TLS":             "implicit",
		"OTP_TTL":              "5m",
		"OTP_DIGITS":           "8",
		"CORS_ALLOWED_ORIGINS": "https://a.example, ,https://b.example",
		"STUDENT_LIST_ENABLED": "false",
	}})
	require.NoError(t, err)

	require.Equal(t, 9000, cfg.Port)
	require.Equal(t, "postgres", cfg.DatabaseDriver)
	require.Equal(t, "store", cfg.LedgerBackend)
	require.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	require.Equal(t, 465, cfg.SMTP.Port)
	require.Equal(t, "implicit", cfg.SMTP.TLS)
	require.Equal(t, 5*time.Minute, cfg.OTPTTL)
	require.Equal(t, 8, cfg.OTPDigits)
	require.False(t, cfg.StudentListEnabled)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	require.Equal(t, "Configured", cfg.DatabaseStatus())
	require.Equal(t, "Configured", cfg.MailStatus())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown driver", map[string]string{"DATABASE_DRIVER": "mongo"}, "DATABASE_DRIVER"},
		{"postgres without url", map[string]string{"DATABASE_DRIVER": "postgres"}, "DATABASE_URL"},
		{"unknown ledger", map[string]string{"LEDGER_BACKEND": "redis"}, "LEDGER_BACKEND"},
		{"unknown notifier", map[string]string{"NOTIFIER": "sms"}, "NOTIFIER"},
		{"smtp without host", map[string]string{"NOTIFIER": "smtp", "SMTP_FROM": "a@b.com"}, "SMTP_HOST"},
		{"smtp without sender", map[string]string{"NOTIFIER": "smtp", "SMTP_HOST": "mail"}, "SMTP_FROM"},
		{"bad tls", map[string]string{"NOTIFIER": "smtp", "SMTP_HOST": "mail", "SMTP_FROM": "a@b.com", "SMTP_TLS": "ssl"}, "SMTP_TLS"},
		{"bad digits", map[string]string{"OTP_DIGITS": "4"}, "OTP_DIGITS"},
		{"zero ttl", map[string]string{"OTP_TTL": "0s"}, "OTP_TTL"},
		{"zero burst", map[string]string{"RATELIMIT_STRICT_BURST": "0"}, "rate limit strict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(env.Options{Environment: tt.env})
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfigParseError(t *testing.T) {
	_, err := ParseConfig(env.Options{Environment: map[string]string{"PORT": "eighty"}})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestMailStatusWithLogNotifier(t *testing.T) {
	cfg, err := ParseConfig(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(cfg.MailStatus(), "Missing"))
}

func TestNewWiresRouter(t *testing.T) {
	dir := t.TempDir()

	cfg, err := ParseConfig(env.Options{Environment: map[string]string{
		"DATABASE_FILE":  filepath.Join(dir, "quizbank.db"),
		"PEPPER_FILE":    filepath.Join(dir, "pepper"),
		"LEDGER_BACKEND": "store",
		"LOG_LEVEL":      "error",
	}})
	require.NoError(t, err)

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/students", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestNewFlushesTracingOnFailure(t *testing.T) {
	orig := newTracing
	t.Cleanup(func() { newTracing = orig })

	var shutdowns int
	newTracing = func(context.Context, string, string, string) (func(context.Context) error, error) {
		return func(context.Context) error {
			shutdowns++
			return nil
		}, nil
	}

	// Each case breaks New after tracing is up.
	cases := []struct {
		name   string
		mutate func(cfg *Config, dir string)
	}{
		{"database", func(cfg *Config, dir string) {
			cfg.DatabaseFile = filepath.Join(dir, "missing", "quizbank.db")
		}},
		{"services", func(cfg *Config, _ string) { cfg.OTPDigits = 7 }},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg, err := ParseConfig(env.Options{Environment: map[string]string{
				"DATABASE_FILE": filepath.Join(dir, "quizbank.db"),
				"PEPPER_FILE":   filepath.Join(dir, "pepper"),
				"LOG_LEVEL":     "error",
			}})
			require.NoError(t, err)
			tc.mutate(&cfg, dir)

			_, err = New(cfg)
			require.Error(t, err)
			require.Equal(t, i+1, shutdowns)
		})
	}
}
