package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
	"github.com/aussiebroadwan/quizbank/internal/registration/store"
	"github.com/aussiebroadwan/quizbank/pkg/slogx"
)

// AuthService checks a student ID and password against committed accounts.
// It issues no session or token; the caller decides what a successful
// login means.
type AuthService struct {
	Accounts store.Accounts
	Hasher   Hasher

	dummyOnce sync.Once
	dummyHash string
}

// dummy returns a hash that no password matches. Unknown student IDs are
// verified against it so both failure paths cost one hash comparison.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash("quizbank-unknown-account")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

// Login returns the public view of the account on success.
func (s *AuthService) Login(ctx context.Context, studentID, secret string) (acct domain.PublicAccount, err error) {
	studentID = strings.TrimSpace(studentID)

	ctx, span := startSpan(ctx, "registration.login", attribute.String("registration.student_id", studentID))
	defer func() { finish(span, "login", err) }()

	if missing := missingFields("studentID", studentID, "password", secret); len(missing) > 0 {
		return domain.PublicAccount{}, ErrMissingField.withFields(missing...).withMessage("Student ID and password are required")
	}

	log := slogx.FromContext(ctx).With(slog.String("student_id", studentID))

	account, err := s.Accounts.GetAccountByStudentID(ctx, studentID)
	if errors.Is(err, store.ErrNotFound) {
		if h := s.dummy(); h != "" {
			_, _ = s.Hasher.Verify(secret, h)
		}
		log.Info("login failed", slog.String("reason", "unknown student id"))
		return domain.PublicAccount{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Error("failed to look up account", slog.Any("error", err))
		return domain.PublicAccount{}, internal("get account by student id", err)
	}

	if !account.Verified {
		return domain.PublicAccount{}, ErrEmailNotVerified
	}

	ok, err := s.Hasher.Verify(secret, account.PasswordHash)
	if err != nil {
		log.Error("failed to verify password", slog.Any("error", err))
		return domain.PublicAccount{}, internal("verify password", err)
	}
	if !ok {
		log.Info("login failed", slog.String("reason", "wrong password"))
		return domain.PublicAccount{}, ErrInvalidCredentials
	}

	log.Info("login succeeded", slog.String("account_id", account.ID))
	return account.Public(), nil
}
