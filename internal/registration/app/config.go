package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aussiebroadwan/quizbank/pkg/httpx"
)

type Config struct {
	Env                 string        `env:"ENV"                   envDefault:"dev"`  // dev, staging, prod
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"` // debug, info, warn, error
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"` // json, text
	Port                int           `env:"PORT"                  envDefault:"8000"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"sqlite"` // sqlite, postgres
	DatabaseFile   string `env:"DATABASE_FILE"   envDefault:"quizbank.db"`
	DatabaseURL    string `env:"DATABASE_URL"` // Required for postgres
	LedgerBackend  string `env:"LEDGER_BACKEND"  envDefault:"memory"` // memory, store
	PepperFile     string `env:"PEPPER_FILE"     envDefault:"pepper"`

	OTPTTL    time.Duration `env:"OTP_TTL"    envDefault:"10m"`
	OTPDigits int           `env:"OTP_DIGITS" envDefault:"6"`

	Notifier string     `env:"NOTIFIER" envDefault:"log"` // log, smtp
	SMTP     SMTPConfig `envPrefix:"SMTP_"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	StudentListEnabled bool     `env:"STUDENT_LIST_ENABLED" envDefault:"true"`

	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	PendingRetention     time.Duration `env:"PENDING_RETENTION"     envDefault:"1h"`

	// RATELIMIT_STRICT_REQUESTS, RATELIMIT_MODERATE_WINDOW, ... Unset
	// fields keep the httpx defaults.
	RateLimits httpx.RateLimits `envPrefix:"RATELIMIT_"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"` // Tracing is off when empty
}

type SMTPConfig struct {
	Host       string        `env:"HOST"`
	Port       int           `env:"PORT"        envDefault:"587"`
	Username   string        `env:"USERNAME"`
	Password   string        `env:"PASSWORD"`
	From       string        `env:"FROM"`
	SenderName string        `env:"SENDER_NAME" envDefault:"QuizBank"`
	TLS        string        `env:"TLS"         envDefault:"starttls"` // starttls, implicit, none
	Timeout    time.Duration `env:"TIMEOUT"     envDefault:"10s"`
}

// LoadConfig parses the environment and validates the result.
func LoadConfig() (Config, error) {
	return ParseConfig(env.Options{})
}

// ParseConfig is LoadConfig with explicit parse options, so tests can pass
// an Environment map instead of touching the process environment.
func ParseConfig(opts env.Options) (Config, error) {
	cfg := Config{RateLimits: httpx.DefaultRateLimits()}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	switch c.DatabaseDriver {
	case "sqlite":
		if c.DatabaseFile == "" {
			bad("DATABASE_FILE is required for the sqlite driver")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			bad("DATABASE_URL is required for the postgres driver")
		}
	default:
		bad("unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	switch c.LedgerBackend {
	case "memory", "store":
	default:
		bad("unknown LEDGER_BACKEND %q", c.LedgerBackend)
	}

	switch c.Notifier {
	case "log":
	case "smtp":
		if c.SMTP.Host == "" {
			bad("SMTP_HOST is required for the smtp notifier")
		}
		if c.SMTP.From == "" && c.SMTP.Username == "" {
			bad("SMTP_FROM or SMTP_USERNAME is required for the smtp notifier")
		}
		switch c.SMTP.TLS {
		case "starttls", "implicit", "none":
		default:
			bad("unknown SMTP_TLS %q", c.SMTP.TLS)
		}
	default:
		bad("unknown NOTIFIER %q", c.Notifier)
	}

	if c.OTPDigits != 6 && c.OTPDigits != 8 {
		bad("OTP_DIGITS must be 6 or 8, got %d", c.OTPDigits)
	}
	if c.OTPTTL <= 0 {
		bad("OTP_TTL must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		bad("PORT %d out of range", c.Port)
	}
	if err := c.RateLimits.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	return errors.Join(errs...)
}

// DatabaseStatus and MailStatus report "Configured" or "Missing" for the
// startup banner.
func (c Config) DatabaseStatus() string {
	if c.DatabaseDriver == "postgres" {
		return configured(c.DatabaseURL != "")
	}
	return configured(c.DatabaseFile != "")
}

func (c Config) MailStatus() string {
	if c.Notifier != "smtp" {
		return "Missing (codes are logged)"
	}
	return configured(c.SMTP.Host != "" && (c.SMTP.From != "" || c.SMTP.Username != ""))
}

func configured(ok bool) string {
	if ok {
		return "Configured"
	}
	return "Missing"
}

// AllowedOrigins returns the CORS origins with blanks removed.
func (c Config) AllowedOrigins() []string {
	out := make([]string, 0, len(c.CORSAllowedOrigins))
	for _, o := range c.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
