package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
)

// LedgerAdapter exposes PendingRegistrations with the ledger contract the
// registration service expects: a missing entry is (zero, false, nil)
// instead of ErrNotFound.
type LedgerAdapter struct {
	store Store
}

// NewLedgerAdapter creates a ledger backed by the store's pending table.
func NewLedgerAdapter(store Store) *LedgerAdapter {
	return &LedgerAdapter{store: store}
}

func (a *LedgerAdapter) Get(ctx context.Context, email string) (domain.PendingRegistration, bool, error) {
	p, err := a.store.PendingRegistrations().GetPending(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return domain.PendingRegistration{}, false, nil
	}
	if err != nil {
		return domain.PendingRegistration{}, false, err
	}
	return p, true, nil
}

func (a *LedgerAdapter) Put(ctx context.Context, p domain.PendingRegistration) error {
	return a.store.PendingRegistrations().UpsertPending(ctx, p)
}

func (a *LedgerAdapter) Delete(ctx context.Context, email string) error {
	return a.store.PendingRegistrations().DeletePending(ctx, email)
}

// Promote creates the account and deletes its pending entry in one
// transaction. Nothing is written when either step fails.
func (a *LedgerAdapter) Promote(ctx context.Context, acct domain.Account) error {
	return a.store.WithTx(ctx, func(tx Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, acct); err != nil {
			return err
		}
		return tx.PendingRegistrations().DeletePending(ctx, acct.Email)
	})
}

// PurgeExpired drops entries that expired before the cutoff.
func (a *LedgerAdapter) PurgeExpired(ctx context.Context, before time.Time) (int, error) {
	n, err := a.store.PendingRegistrations().DeletePendingExpiredBefore(ctx, before)
	return int(n), err
}

func (a *LedgerAdapter) Len(ctx context.Context) (int, error) {
	n, err := a.store.PendingRegistrations().CountPending(ctx)
	return int(n), err
}
