package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
)

// Ledger stores pending registrations keyed by normalised email. The
// service serialises access per email, so implementations only need to be
// safe for concurrent use across different keys.
type Ledger interface {
	Get(ctx context.Context, email string) (domain.PendingRegistration, bool, error)
	Put(ctx context.Context, p domain.PendingRegistration) error
	Delete(ctx context.Context, email string) error
	PurgeExpired(ctx context.Context, before time.Time) (int, error)
	Len(ctx context.Context) (int, error)
}

// Promoter is implemented by ledgers that live in the account database.
// Promote inserts the account and removes the pending entry for its email
// in one transaction, so a verified email never keeps a pending entry.
type Promoter interface {
	Promote(ctx context.Context, a domain.Account) error
}

// Hasher turns a password into a one-way encoding and checks candidates
// against it. Verify returns (false, nil) on a plain mismatch.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, encoded string) (bool, error)
}

// Notifier delivers a one-time code to an email address.
type Notifier interface {
	Send(ctx context.Context, email, code string) error
}

// CodeGenerator returns a fresh numeric one-time code.
type CodeGenerator interface {
	Generate() (string, error)
}

// DefaultOTPTTL is how long a code stays valid when no TTL is configured.
const DefaultOTPTTL = 10 * time.Minute
