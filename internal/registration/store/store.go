package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories so a Tx-scoped store has exactly
// the same shape as the root one and nobody opens a transaction inside a
// transaction by accident.
type Store interface {
	Accounts() Accounts
	PendingRegistrations() PendingRegistrations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CreateAccount inserts a verified account. A student id or email that is
	// already taken yields ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) error

	GetAccountByStudentID(ctx context.Context, studentID string) (domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// ListAccounts returns every account, newest first.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// PendingRegistrations persists the registration ledger when the service is
// configured to keep pending entries in the database.
type PendingRegistrations interface {
	GetPending(ctx context.Context, email string) (domain.PendingRegistration, error)

	// UpsertPending stores p, replacing any entry for the same email.
	UpsertPending(ctx context.Context, p domain.PendingRegistration) error

	// DeletePending removes the entry for email. Missing entries are not an error.
	DeletePending(ctx context.Context, email string) error

	// DeletePendingExpiredBefore removes entries whose expiry is before t.
	DeletePendingExpiredBefore(ctx context.Context, t time.Time) (int64, error)

	CountPending(ctx context.Context) (int64, error)
}
