// Package ledger holds pending registrations in process memory.
//
// Entries do not survive a restart and are not shared between processes.
// Use store.LedgerAdapter when pending registrations must outlive the
// process.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
)

// Memory is a map of pending registrations keyed by normalised email. It is
// safe for concurrent use; callers that need read-modify-write atomicity
// serialise on the email themselves.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]domain.PendingRegistration
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]domain.PendingRegistration)}
}

// Get returns a copy of the entry for email.
func (m *Memory) Get(_ context.Context, email string) (domain.PendingRegistration, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.entries[email]
	return p, ok, nil
}

// Put stores p, replacing any entry with the same email.
func (m *Memory) Put(_ context.Context, p domain.PendingRegistration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[p.Email] = p
	return nil
}

func (m *Memory) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, email)
	return nil
}

// PurgeExpired removes entries whose expiry is before the cutoff and
// reports how many were removed.
func (m *Memory) PurgeExpired(_ context.Context, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for email, p := range m.entries {
		if p.ExpiresAt.Before(before) {
			delete(m.entries, email)
			n++
		}
	}
	return n, nil
}

func (m *Memory) Len(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}
