package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
	"github.com/aussiebroadwan/quizbank/internal/registration/store"
	"github.com/aussiebroadwan/quizbank/pkg/slogx"
)

type AccountService struct {
	Accounts store.Accounts
}

// List returns every committed account, newest first, without secrets.
func (s *AccountService) List(ctx context.Context) ([]domain.AccountListing, error) {
	accounts, err := s.Accounts.ListAccounts(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list accounts", slog.Any("error", err))
		return nil, internal("list accounts", err)
	}

	out := make([]domain.AccountListing, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Listing())
	}
	return out, nil
}
