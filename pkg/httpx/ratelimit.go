package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/quizbank/pkg/slogx"
)

// RateLimitConfig is one token bucket profile. A bucket holds Burst tokens
// and refills at RequestsPerWindow per Window.
type RateLimitConfig struct {
	RequestsPerWindow int           `env:"REQUESTS"`
	Window            time.Duration `env:"WINDOW"`
	Burst             int           `env:"BURST"`
}

func (c RateLimitConfig) validate(name string) error {
	if c.RequestsPerWindow <= 0 || c.Window <= 0 || c.Burst <= 0 {
		return fmt.Errorf("rate limit %s: all fields must be positive", name)
	}
	return nil
}

// RateLimits groups the profiles the router assigns to its routes. It is
// embedded in the service config with the RATELIMIT_ prefix, so
// RATELIMIT_STRICT_REQUESTS sets Strict.RequestsPerWindow.
type RateLimits struct {
	// Strict guards login and code verification against guessing.
	Strict RateLimitConfig `envPrefix:"STRICT_"`

	// Moderate guards endpoints that send mail (start, resend).
	Moderate RateLimitConfig `envPrefix:"MODERATE_"`

	// Lenient covers health checks and the student listing.
	Lenient RateLimitConfig `envPrefix:"LENIENT_"`

	// Public covers the banner, docs and metrics.
	Public RateLimitConfig `envPrefix:"PUBLIC_"`
}

var (
	StrictLimit   = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}
	LenientLimit  = RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100}
	PublicLimit   = RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
)

// DefaultRateLimits returns the production profiles.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   StrictLimit,
		Moderate: ModerateLimit,
		Lenient:  LenientLimit,
		Public:   PublicLimit,
	}
}

// Validate reports every profile with a non-positive field.
func (l RateLimits) Validate() error {
	return errors.Join(
		l.Strict.validate("strict"),
		l.Moderate.validate("moderate"),
		l.Lenient.validate("lenient"),
		l.Public.validate("public"),
	)
}

var rateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Requests rejected by a rate limiter",
	},
	[]string{"path"},
)

// KeyExtractor is a function that extracts a unique key from the request
// for rate limiting purposes (e.g., IP address, user ID, client ID, etc.)
type KeyExtractor func(*http.Request) string

// Common key extractors

// IPKeyExtractor extracts the client IP address from the request.
// It handles X-Forwarded-For and X-Real-IP headers for proxied requests.
func IPKeyExtractor(r *http.Request) string {
	// Check X-Forwarded-For header (comma-separated list)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fallback to RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// CompositeKeyExtractor combines multiple key extractors with a separator.
// Example: CompositeKeyExtractor(":", IPKeyExtractor, JSONFieldKeyExtractor("email"))
// would produce keys like "192.168.1.1:juan@example.com"
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		var parts []string
		for _, extractor := range extractors {
			if key := extractor(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

// JSONFieldKeyExtractor extracts a top-level string field from a JSON body.
// The body is buffered and restored so the handler can still decode it.
// Values are trimmed and lower-cased, matching how the service normalises
// emails, so "A@x.com" and "a@x.com" share a bucket.
func JSONFieldKeyExtractor(fieldName string) KeyExtractor {
	return func(r *http.Request) string {
		if r.Body == nil {
			return ""
		}

		raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(raw))
		if err != nil {
			return ""
		}

		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return ""
		}

		v, ok := fields[fieldName].(string)
		if !ok {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(v))
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter holds one bucket per key. Buckets idle for longer than
// idleAfter are dropped on the next sweep; a dropped bucket was full anyway.
type rateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
}

func newRateLimiter(config RateLimitConfig) *rateLimiter {
	perSecond := float64(config.RequestsPerWindow) / config.Window.Seconds()
	return &rateLimiter{
		buckets:   make(map[string]*bucket),
		rate:      rate.Limit(perSecond),
		burst:     config.Burst,
		idleAfter: max(config.Window, 5*time.Minute),
		lastSweep: time.Now(),
	}
}

func (rl *rateLimiter) get(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.idleAfter {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= rl.idleAfter {
				delete(rl.buckets, k)
			}
		}
		rl.lastSweep = now
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// RateLimitMiddleware creates a rate limiting middleware with the given configuration.
// The keyExtractor determines how requests are grouped for rate limiting.
func RateLimitMiddleware(config RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	rl := newRateLimiter(config)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			// Extract the key for this request
			key := keyExtractor(r)
			if key == "" {
				// If we can't extract a key, allow the request but log it
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			limiter := rl.get(key, time.Now())
			if !limiter.Allow() {
				// Calculate retry-after (when the next token will be available)
				reservation := limiter.Reserve()
				delay := reservation.Delay()
				reservation.Cancel() // Don't actually consume the reservation

				retryAfter := max(int(delay.Seconds()), 1)

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Window", config.Window.String())

				path := r.Pattern
				if path == "" {
					path = "unmatched"
				}
				rateLimitedTotal.WithLabelValues(path).Inc()

				log.Warn("rate limit exceeded",
					slog.String("key", key),
					slog.String("endpoint", path),
					slog.Int("retry_after", retryAfter),
				)

				WriteJSON(w, http.StatusTooManyRequests, map[string]string{
					"error":   "rate_limit_exceeded",
					"message": "Too many requests. Please try again later.",
				})
				return
			}

			// Request is allowed, continue to next handler
			next.ServeHTTP(w, r)
		})
	}
}

// Convenience functions for common rate limiting scenarios

// RateLimitByIP creates a rate limiter that limits by IP address only.
func RateLimitByIP(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, IPKeyExtractor)
}

// RateLimitByIPAndJSONField creates a rate limiter that limits by IP + a
// JSON body field. Login is limited by IP + studentID, code verification by
// IP + email, so guessing against one account cannot hide behind many IPs
// sharing a NAT and vice versa.
func RateLimitByIPAndJSONField(config RateLimitConfig, fieldName string) Middleware {
	return RateLimitMiddleware(config, CompositeKeyExtractor(":",
		IPKeyExtractor,
		JSONFieldKeyExtractor(fieldName),
	))
}
