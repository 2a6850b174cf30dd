// Package idx mints the ULID identifiers used for accounts, outgoing mail
// and HTTP requests.
package idx

import (
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

// Source mints IDs. IDs from one Source taken at the same millisecond still
// sort in the order they were minted.
type Source struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewSource returns a Source reading randomness from r, or crypto/rand when
// r is nil.
func NewSource(r io.Reader) *Source {
	if r == nil {
		r = rand.Reader
	}
	return &Source{entropy: ulid.Monotonic(r, 0)}
}

// At mints an ID carrying t, truncated to milliseconds.
func (s *Source) At(t time.Time) (ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := ulid.New(ulid.Timestamp(t), s.entropy)
	if err != nil {
		return "", err
	}
	return ID(u.String()), nil
}

var shared = sync.OnceValue(func() *Source { return NewSource(nil) })

// New mints an ID for the current time.
func New() ID {
	return NewAt(time.Now())
}

// NewAt mints an ID for t from the shared source. Account IDs are minted
// with the service clock so they sort by creation time.
func NewAt(t time.Time) ID {
	id, err := shared().At(t.UTC())
	if err != nil {
		// Unreachable with crypto/rand in practice.
		panic("idx: " + err.Error())
	}
	return id
}

// Parse validates s as a ULID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if _, err := ulid.ParseStrict(s); err != nil {
		return "", ErrInvalid
	}
	return ID(s), nil
}

func (id ID) String() string { return string(id) }

// Time returns the timestamp embedded in id, or the zero time when id is not
// a valid ULID.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
