package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
	"github.com/aussiebroadwan/quizbank/internal/registration/ledger"
	"github.com/aussiebroadwan/quizbank/internal/registration/store"
	"github.com/aussiebroadwan/quizbank/internal/registration/store/drivers/sqlite"
	"github.com/aussiebroadwan/quizbank/pkg/cryptox"
)

// fakeHasher is a reversible stand-in for argon2 so tests stay fast.
type fakeHasher struct {
	mu    sync.Mutex
	calls int
}

func (h *fakeHasher) Hash(secret string) (string, error) {
	h.mu.Lock()
	h.calls++
	h.mu.Unlock()
	return "hashed:" + secret, nil
}

func (h *fakeHasher) Verify(secret, encoded string) (bool, error) {
	h.mu.Lock()
	h.calls++
	h.mu.Unlock()
	if !strings.HasPrefix(encoded, "hashed:") {
		return false, errors.New("bad encoding")
	}
	return encoded == "hashed:"+secret, nil
}

func (h *fakeHasher) Calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

// fakeNotifier records the last code sent to each address.
type fakeNotifier struct {
	mu    sync.Mutex
	codes map[string]string
	sent  int
	fail  error
}

func (n *fakeNotifier) Send(_ context.Context, email, code string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	if n.codes == nil {
		n.codes = map[string]string{}
	}
	n.codes[email] = code
	n.sent++
	return nil
}

func (n *fakeNotifier) Code(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.codes[email]
}

func (n *fakeNotifier) Sent() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent
}

func (n *fakeNotifier) FailWith(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fail = err
}

// fakeClock only moves when told to.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	Store    store.Store
	Ledger   Ledger
	Hasher   *fakeHasher
	Notifier *fakeNotifier
	Clock    *fakeClock

	Registration *RegistrationService
	Auth         *AuthService
	Accounts     *AccountService
}

// newHarness wires the service over the in-memory ledger.
func newHarness(t *testing.T) *harness {
	t.Helper()
	return buildHarness(t, func(store.Store) Ledger { return ledger.NewMemory() })
}

// newStoreHarness keeps pending entries in the account database, as
// LEDGER_BACKEND=store does.
func newStoreHarness(t *testing.T) *harness {
	t.Helper()
	return buildHarness(t, func(s store.Store) Ledger { return store.NewLedgerAdapter(s) })
}

func buildHarness(t *testing.T, newLedger func(store.Store) Ledger) *harness {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	h := &harness{
		Store:    s,
		Ledger:   newLedger(s),
		Hasher:   &fakeHasher{},
		Notifier: &fakeNotifier{},
		Clock:    newFakeClock(),
	}

	h.Registration = &RegistrationService{
		Accounts: s.Accounts(),
		Ledger:   h.Ledger,
		Hasher:   h.Hasher,
		Notifier: h.Notifier,
		Codes:    cryptox.CodeGenerator{},
		Clock:    h.Clock.Now,
		OTPTTL:   10 * time.Minute,
	}
	h.Auth = &AuthService{Accounts: s.Accounts(), Hasher: h.Hasher}
	h.Accounts = &AccountService{Accounts: s.Accounts()}

	return h
}

func validRequest() StartRequest {
	return StartRequest{
		Profile: domain.Profile{
			LastName:   "Dela Cruz",
			FirstName:  "Juan",
			MiddleName: "Miguel",
			Course:     "BSIT",
			Section:    "A",
			YearLevel:  "2",
		},
		StudentID:    "21-1234-567890",
		Email:        "a@b.com",
		Secret:       "s3cret-pass",
		Confirmation: "s3cret-pass",
	}
}

// register runs a full start and verify for req.
func (h *harness) register(t *testing.T, req StartRequest) domain.PublicAccount {
	t.Helper()
	ctx := context.Background()

	_, err := h.Registration.Start(ctx, req)
	require.NoError(t, err)

	email := domain.NormalizeEmail(req.Email)
	acct, err := h.Registration.Verify(ctx, email, h.Notifier.Code(email))
	require.NoError(t, err)
	return acct
}

func requireReason(t *testing.T, err error, want *Error) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, want)

	var se *Error
	require.True(t, errors.As(err, &se))
	require.Equal(t, want.Kind, se.Kind)
}
