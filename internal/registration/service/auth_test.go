package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
)

func TestLogin(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	h.register(t, validRequest())

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, h.Store.Accounts().CreateAccount(ctx, domain.Account{
		ID:           "01JUNVERIFIED0000000000000",
		Profile:      domain.Profile{LastName: "Reyes", FirstName: "Ana", MiddleName: "Lopez"},
		StudentID:    "20-0000-000001",
		Email:        "ana@b.com",
		PasswordHash: "hashed:pw",
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))

	t.Run("success", func(t *testing.T) {
		acct, err := h.Auth.Login(ctx, "21-1234-567890", "s3cret-pass")
		require.NoError(t, err)
		require.Equal(t, "Dela Cruz, Juan Miguel", acct.FullName)
		require.Equal(t, "a@b.com", acct.Email)
	})

	t.Run("student id is trimmed", func(t *testing.T) {
		_, err := h.Auth.Login(ctx, " 21-1234-567890 ", "s3cret-pass")
		require.NoError(t, err)
	})

	t.Run("password is not trimmed", func(t *testing.T) {
		_, err := h.Auth.Login(ctx, "21-1234-567890", " s3cret-pass")
		requireReason(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password and unknown id look the same", func(t *testing.T) {
		_, wrongPw := h.Auth.Login(ctx, "21-1234-567890", "nope")
		_, unknown := h.Auth.Login(ctx, "99-9999-999999", "nope")

		requireReason(t, wrongPw, ErrInvalidCredentials)
		requireReason(t, unknown, ErrInvalidCredentials)

		var a, b *Error
		require.True(t, errors.As(wrongPw, &a))
		require.True(t, errors.As(unknown, &b))
		require.Equal(t, a.Message, b.Message)
		require.Equal(t, "Invalid Student ID or password", a.Message)
	})

	t.Run("unverified account is distinct", func(t *testing.T) {
		_, err := h.Auth.Login(ctx, "20-0000-000001", "pw")
		requireReason(t, err, ErrEmailNotVerified)
		require.NotErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := h.Auth.Login(ctx, "", "")
		requireReason(t, err, ErrMissingField)

		var se *Error
		require.True(t, errors.As(err, &se))
		require.Equal(t, []string{"studentID", "password"}, se.Fields)
		require.Equal(t, "Student ID and password are required", se.Message)
	})
}

func TestLoginUnknownIDStillHashes(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	before := h.Hasher.Calls()
	_, err := h.Auth.Login(context.Background(), "99-9999-999999", "whatever")
	requireReason(t, err, ErrInvalidCredentials)
	require.Greater(t, h.Hasher.Calls(), before, "unknown ids pay for a hash comparison")
}

func TestAccountListing(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	ctx := context.Background()

	list, err := h.Accounts.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	h.register(t, validRequest())

	h.Clock.Advance(time.Minute)
	second := validRequest()
	second.Email = "second@b.com"
	second.StudentID = "22-2222-222222"
	h.register(t, second)

	list, err = h.Accounts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "second@b.com", list[0].Email, "newest first")
	require.True(t, list[1].Verified)
	require.Equal(t, "Dela Cruz", list[1].LastName)
}
