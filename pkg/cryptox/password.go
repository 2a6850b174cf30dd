package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrPasswordMismatch is returned by VerifyPassword when the password is wrong.
	ErrPasswordMismatch = errors.New("password does not match")
	// ErrInvalidHash is returned when an encoded hash cannot be parsed.
	ErrInvalidHash = errors.New("invalid hash format")
)

// Argon2Params is the Argon2id cost. It is encoded into every hash, so
// changing it only affects new hashes.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params follows the OWASP minimum for Argon2id (19 MiB, t=2, p=1).
var DefaultArgon2Params = Argon2Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// HashPassword hashes password with the default parameters.
func HashPassword(password string) (string, error) {
	return DefaultArgon2Params.Hash(password)
}

// Hash returns a PHC-format Argon2id hash of password plus the pepper.
func (p Argon2Params) Hash(password string) (string, error) {
	pep, err := GetPepper()
	if err != nil {
		return "", err
	}

	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password+pep), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

type decodedHash struct {
	params Argon2Params
	salt   []byte
	key    []byte
}

func decodeHash(encoded string) (decodedHash, error) {
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return decodedHash{}, fmt.Errorf("%w: expected 6 parts", ErrInvalidHash)
	}
	if parts[1] != "argon2id" {
		return decodedHash{}, fmt.Errorf("%w: not argon2id", ErrInvalidHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return decodedHash{}, fmt.Errorf("%w: wrong version", ErrInvalidHash)
	}

	var d decodedHash
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &d.params.Memory, &d.params.Iterations, &d.params.Parallelism); err != nil {
		return decodedHash{}, fmt.Errorf("%w: failed to parse parameters: %v", ErrInvalidHash, err)
	}

	var err error
	if d.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return decodedHash{}, fmt.Errorf("%w: failed to decode salt: %v", ErrInvalidHash, err)
	}
	if d.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(d.key) == 0 {
		return decodedHash{}, fmt.Errorf("%w: failed to decode hash", ErrInvalidHash)
	}
	d.params.SaltLength = uint32(len(d.salt)) // #nosec G115 - decoded from a short header
	d.params.KeyLength = uint32(len(d.key))   // #nosec G115
	return d, nil
}

// VerifyPassword checks password against a hash made by Hash. It returns
// ErrPasswordMismatch on a wrong password and wraps ErrInvalidHash when
// encoded cannot be parsed.
func VerifyPassword(password, encoded string) error {
	d, err := decodeHash(encoded)
	if err != nil {
		return err
	}

	pep, err := GetPepper()
	if err != nil {
		return err
	}

	key := argon2.IDKey([]byte(password+pep), d.salt, d.params.Iterations, d.params.Memory, d.params.Parallelism, d.params.KeyLength)
	if subtle.ConstantTimeCompare(key, d.key) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}

// Argon2Hasher hashes student passwords. The registration service holds
// only the encoded string it returns, never the password itself. A zero
// Params means DefaultArgon2Params.
type Argon2Hasher struct {
	Params Argon2Params
}

func (h Argon2Hasher) params() Argon2Params {
	if h.Params == (Argon2Params{}) {
		return DefaultArgon2Params
	}
	return h.Params
}

func (h Argon2Hasher) Hash(secret string) (string, error) {
	return h.params().Hash(secret)
}

// Verify reports whether secret matches encoded. A mismatch is (false, nil);
// an error means the stored hash itself is unusable.
func (Argon2Hasher) Verify(secret, encoded string) (bool, error) {
	err := VerifyPassword(secret, encoded)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrPasswordMismatch):
		return false, nil
	default:
		return false, err
	}
}
