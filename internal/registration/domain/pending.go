package domain

import (
	"strings"
	"time"
)

// PendingRegistration is a candidate awaiting its one-time code. It lives
// only in the ledger and never holds the raw password or the code itself.
type PendingRegistration struct {
	Email      string // ledger key, lower-cased
	Profile    Profile
	StudentID  string
	SecretHash string // argon2 encoded password
	CodeHash   string // sha256 fingerprint of the code
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Expired reports whether the code has lapsed at now. A code is still valid
// at exactly ExpiresAt.
func (p PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// NormalizeEmail trims and lower-cases an email before it is used as a key
// or stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
