package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"unicode password", "contraseña-ñandú"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"), "hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.Equal(t, "m=19456,t=2,p=1", parts[3])
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")
			require.NotContains(t, hash, tt.password)

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	hash1, err := HashPassword("samepassword")
	require.NoError(t, err)
	hash2, err := HashPassword("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.NoError(t, VerifyPassword("samepassword", hash1))
	require.NoError(t, VerifyPassword("samepassword", hash2))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{"wrong-password", "Correct-Password", "correct-password ", "", strings.Repeat("x", 10000)} {
		require.ErrorIs(t, VerifyPassword(wrong, hash), ErrPasswordMismatch, "input %q", wrong)
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword("test-password", tt.invalidHash), ErrInvalidHash)
		})
	}
}

func TestArgon2Hasher(t *testing.T) {
	var h Argon2Hasher

	encoded, err := h.Hash("Secret123!")
	require.NoError(t, err)

	ok, err := h.Verify("Secret123!", encoded)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Verify("secret123!", encoded)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = h.Verify("Secret123!", "not-a-hash")
	require.ErrorIs(t, err, ErrInvalidHash)
}

func TestArgon2Hasher_CustomParams(t *testing.T) {
	cheap := Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}
	h := Argon2Hasher{Params: cheap}

	encoded, err := h.Hash("Secret123!")
	require.NoError(t, err)
	require.Contains(t, encoded, "$m=1024,t=1,p=1$")

	// Verification reads the cost from the hash, not from the hasher
	ok, err := Argon2Hasher{}.Verify("Secret123!", encoded)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPepper_PersistedAndReloaded(t *testing.T) {
	first, err := GetPepper()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	hash, err := HashPassword("pw")
	require.NoError(t, err)

	// A reload from the same file yields the same pepper, so old hashes verify
	require.NoError(t, ReloadPepper())
	again, err := GetPepper()
	require.NoError(t, err)
	require.Equal(t, first, again)
	require.NoError(t, VerifyPassword("pw", hash))
}

func TestPepper_DifferentPepperBreaksVerification(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)

	prev := pepperFile
	t.Cleanup(func() { SetPepperPath(prev) })

	SetPepperPath(filepath.Join(t.TempDir(), "other-pepper"))
	require.ErrorIs(t, VerifyPassword("pw", hash), ErrPasswordMismatch)
}

func TestPepper_EmptyFileRejected(t *testing.T) {
	prev := pepperFile
	t.Cleanup(func() { SetPepperPath(prev) })

	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0600))
	SetPepperPath(path)

	require.Error(t, ReloadPepper())
}
