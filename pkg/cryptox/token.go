package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token.
// One-time codes are stored only as their fingerprint so a leaked pending
// entry never reveals a usable code.
//
// The fingerprint is returned as a base64url-encoded string (43 chars).
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// MatchFingerprint reports whether token fingerprints to want, comparing in
// constant time.
func MatchFingerprint(token, want string) bool {
	got := FingerprintToken(token)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
