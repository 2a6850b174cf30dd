package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
	"github.com/stretchr/testify/require"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.Profile
		want    string
	}{
		{"first middle last", domain.Profile{LastName: "Dela Cruz", FirstName: "Juan", MiddleName: "Miguel"}, "Dela Cruz, Juan Miguel"},
		{"with suffix", domain.Profile{LastName: "Santos", FirstName: "Jose", MiddleName: "Reyes", Suffix: "Jr."}, "Santos, Jose Reyes Jr."},
		{"blank suffix ignored", domain.Profile{LastName: "Santos", FirstName: "Jose", MiddleName: "Reyes", Suffix: "  "}, "Santos, Jose Reyes"},
		{"no middle name", domain.Profile{LastName: "Lim", FirstName: "Ana"}, "Lim, Ana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.profile.FullName())
		})
	}
}

func TestPublicProjectionOmitsSecrets(t *testing.T) {
	a := domain.Account{
		ID:           "01J0000000000000000000000",
		Profile:      domain.Profile{LastName: "Dela Cruz", FirstName: "Juan", MiddleName: "Miguel", Course: "BSIT", Section: "A", YearLevel: "2"},
		StudentID:    "21-1234-567890",
		Email:        "juan@example.com",
		PasswordHash: "$argon2id$v=19$secret",
		Verified:     true,
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	pub, err := json.Marshal(a.Public())
	require.NoError(t, err)
	require.JSONEq(t, `{
		"id":"01J0000000000000000000000",
		"studentID":"21-1234-567890",
		"fullName":"Dela Cruz, Juan Miguel",
		"email":"juan@example.com",
		"course":"BSIT",
		"section":"A",
		"yearLevel":"2"
	}`, string(pub))

	listing, err := json.Marshal(a.Listing())
	require.NoError(t, err)
	require.NotContains(t, string(listing), "argon2id")
	require.Contains(t, string(listing), `"isVerified":true`)
	require.Contains(t, string(listing), `"lastName":"Dela Cruz"`)
}

func TestPendingExpired(t *testing.T) {
	exp := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	p := domain.PendingRegistration{ExpiresAt: exp}

	require.False(t, p.Expired(exp.Add(-time.Second)))
	require.False(t, p.Expired(exp), "still valid at exactly the expiry")
	require.True(t, p.Expired(exp.Add(time.Nanosecond)))
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "juan@example.com", domain.NormalizeEmail("  Juan@Example.COM\t"))
}
