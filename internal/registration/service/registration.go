package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
	"github.com/aussiebroadwan/quizbank/internal/registration/store"
	"github.com/aussiebroadwan/quizbank/pkg/cryptox"
	"github.com/aussiebroadwan/quizbank/pkg/idx"
	"github.com/aussiebroadwan/quizbank/pkg/keylock"
	"github.com/aussiebroadwan/quizbank/pkg/slogx"
)

// StartRequest is a candidate registration as submitted by the client.
type StartRequest struct {
	Profile      domain.Profile
	StudentID    string
	Email        string
	Secret       string
	Confirmation string
}

// StartResult is returned by Start and Resend. It never carries the code.
type StartResult struct {
	Email     string
	ExpiresAt time.Time
}

// RegistrationService drives a candidate from submission through OTP
// confirmation to a committed account.
//
// Every operation on one email runs under that email's lock for its whole
// read-modify-write, notifier call included. Operations on different emails
// never contend.
type RegistrationService struct {
	Accounts store.Accounts
	Ledger   Ledger
	Hasher   Hasher
	Notifier Notifier
	Codes    CodeGenerator

	// Clock defaults to time.Now.
	Clock func() time.Time
	// OTPTTL defaults to DefaultOTPTTL.
	OTPTTL time.Duration

	locks keylock.Locker
}

func (s *RegistrationService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *RegistrationService) ttl() time.Duration {
	if s.OTPTTL > 0 {
		return s.OTPTTL
	}
	return DefaultOTPTTL
}

// normalizeStart trims identity fields and lower-cases the email. The
// password and its confirmation are compared byte for byte.
func normalizeStart(req StartRequest) StartRequest {
	p := req.Profile
	p.LastName = strings.TrimSpace(p.LastName)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.MiddleName = strings.TrimSpace(p.MiddleName)
	p.Suffix = strings.TrimSpace(p.Suffix)
	p.Course = strings.TrimSpace(p.Course)
	p.Section = strings.TrimSpace(p.Section)
	p.YearLevel = strings.TrimSpace(p.YearLevel)

	req.Profile = p
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.Email = domain.NormalizeEmail(req.Email)
	return req
}

// Start validates a candidate, stores it as pending and mails a fresh code.
// A second Start for the same email replaces the earlier pending entry.
func (s *RegistrationService) Start(ctx context.Context, req StartRequest) (res StartResult, err error) {
	req = normalizeStart(req)

	ctx, span := startSpan(ctx, "registration.start", attribute.String("registration.email", req.Email))
	defer func() { finish(span, "start", err) }()

	if err := validateStart(req); err != nil {
		return StartResult{}, err
	}

	ctx = slogx.With(ctx, slog.String("email", req.Email))
	log := slogx.FromContext(ctx)

	unlock, err := s.locks.Lock(ctx, req.Email)
	if err != nil {
		return StartResult{}, internal("lock email", err)
	}
	defer unlock()

	if err := s.checkAvailable(ctx, req.StudentID, req.Email); err != nil {
		return StartResult{}, err
	}

	secretHash, err := s.Hasher.Hash(req.Secret)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return StartResult{}, internal("hash password", err)
	}

	prev, hadPrev, err := s.Ledger.Get(ctx, req.Email)
	if err != nil {
		log.Error("failed to read pending registration", slog.Any("error", err))
		return StartResult{}, internal("get pending", err)
	}

	now := s.now()
	pending := domain.PendingRegistration{
		Email:      req.Email,
		Profile:    req.Profile,
		StudentID:  req.StudentID,
		SecretHash: secretHash,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.issueCode(ctx, &pending, prev, hadPrev, now); err != nil {
		return StartResult{}, err
	}

	if hadPrev {
		log.Info("pending registration replaced")
	} else {
		log.Info("registration started", slog.String("student_id", req.StudentID))
	}

	return StartResult{Email: pending.Email, ExpiresAt: pending.ExpiresAt}, nil
}

// checkAvailable rejects a candidate whose student ID or email already
// belongs to a committed account.
func (s *RegistrationService) checkAvailable(ctx context.Context, studentID, email string) error {
	log := slogx.FromContext(ctx)

	_, err := s.Accounts.GetAccountByStudentID(ctx, studentID)
	switch {
	case err == nil:
		return ErrDuplicateStudentID.withFields("studentID")
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to look up student id", slog.Any("error", err))
		return internal("get account by student id", err)
	}

	_, err = s.Accounts.GetAccountByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrDuplicateEmail.withFields("email")
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to look up email", slog.Any("error", err))
		return internal("get account by email", err)
	}

	return nil
}

// issueCode generates a code for pending, stores the entry and mails the
// code. When delivery fails the ledger goes back to prev, or to no entry.
func (s *RegistrationService) issueCode(ctx context.Context, pending *domain.PendingRegistration, prev domain.PendingRegistration, hadPrev bool, now time.Time) error {
	log := slogx.FromContext(ctx)

	code, err := s.Codes.Generate()
	if err != nil {
		log.Error("failed to generate code", slog.Any("error", err))
		return internal("generate code", err)
	}

	pending.CodeHash = cryptox.FingerprintToken(code)
	// Millisecond precision is what the database backends keep.
	pending.ExpiresAt = now.Add(s.ttl()).Truncate(time.Millisecond)
	pending.UpdatedAt = now

	if err := s.Ledger.Put(ctx, *pending); err != nil {
		log.Error("failed to store pending registration", slog.Any("error", err))
		return internal("put pending", err)
	}

	if err := s.Notifier.Send(ctx, pending.Email, code); err != nil {
		log.Warn("failed to deliver code", slog.Any("error", err))

		var rerr error
		if hadPrev {
			rerr = s.Ledger.Put(ctx, prev)
		} else {
			rerr = s.Ledger.Delete(ctx, pending.Email)
		}
		if rerr != nil {
			log.Error("failed to roll back pending registration", slog.Any("error", rerr))
		}
		return ErrDeliveryFailed.wrap(err)
	}

	return nil
}

// Verify checks code against the pending entry for email and, on a match,
// commits the account. A wrong code leaves the entry in place so the
// candidate can try again until it expires.
func (s *RegistrationService) Verify(ctx context.Context, email, code string) (acct domain.PublicAccount, err error) {
	email = domain.NormalizeEmail(email)
	code = strings.TrimSpace(code)

	ctx, span := startSpan(ctx, "registration.verify", attribute.String("registration.email", email))
	defer func() { finish(span, "verify", err) }()

	if missing := missingFields("email", email, "otpCode", code); len(missing) > 0 {
		return domain.PublicAccount{}, ErrMissingField.withFields(missing...).withMessage("Email and OTP code are required")
	}

	ctx = slogx.With(ctx, slog.String("email", email))
	log := slogx.FromContext(ctx)

	unlock, err := s.locks.Lock(ctx, email)
	if err != nil {
		return domain.PublicAccount{}, internal("lock email", err)
	}
	defer unlock()

	pending, ok, err := s.Ledger.Get(ctx, email)
	if err != nil {
		log.Error("failed to read pending registration", slog.Any("error", err))
		return domain.PublicAccount{}, internal("get pending", err)
	}
	if !ok {
		return domain.PublicAccount{}, ErrSessionNotFound
	}

	now := s.now()
	if pending.Expired(now) {
		s.purge(ctx, email, "expired")
		return domain.PublicAccount{}, ErrOTPExpired
	}

	if !cryptox.MatchFingerprint(code, pending.CodeHash) {
		log.Info("invalid code submitted")
		return domain.PublicAccount{}, ErrInvalidCode.withFields("otpCode")
	}

	account := domain.Account{
		ID:           idx.NewAt(now).String(),
		Profile:      pending.Profile,
		StudentID:    pending.StudentID,
		Email:        pending.Email,
		PasswordHash: pending.SecretHash,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.commit(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Someone else registered the student id or email in the meantime.
			s.purge(ctx, email, "conflict")
			return domain.PublicAccount{}, ErrDuplicateAccount
		}
		log.Error("failed to create account", slog.Any("error", err))
		return domain.PublicAccount{}, internal("create account", err)
	}

	log.Info("registration completed", slog.String("account_id", account.ID))

	return account.Public(), nil
}

// commit turns a confirmed entry into an account. Ledgers sharing the
// account database do both writes in one transaction; otherwise the entry
// is purged once the insert succeeds.
func (s *RegistrationService) commit(ctx context.Context, account domain.Account) error {
	if p, ok := s.Ledger.(Promoter); ok {
		return p.Promote(ctx, account)
	}
	if err := s.Accounts.CreateAccount(ctx, account); err != nil {
		return err
	}
	s.purge(ctx, account.Email, "verified")
	return nil
}

// Resend issues a new code for an existing pending entry. The previous
// code stops working once the new one is delivered.
func (s *RegistrationService) Resend(ctx context.Context, email string) (res StartResult, err error) {
	email = domain.NormalizeEmail(email)

	ctx, span := startSpan(ctx, "registration.resend", attribute.String("registration.email", email))
	defer func() { finish(span, "resend", err) }()

	if email == "" {
		return StartResult{}, ErrMissingField.withFields("email").withMessage("Email is required")
	}

	ctx = slogx.With(ctx, slog.String("email", email))
	log := slogx.FromContext(ctx)

	unlock, err := s.locks.Lock(ctx, email)
	if err != nil {
		return StartResult{}, internal("lock email", err)
	}
	defer unlock()

	prev, ok, err := s.Ledger.Get(ctx, email)
	if err != nil {
		log.Error("failed to read pending registration", slog.Any("error", err))
		return StartResult{}, internal("get pending", err)
	}

	sessionExpired := ErrSessionNotFound.withMessage("Registration session expired. Please start over.")
	if !ok {
		return StartResult{}, sessionExpired
	}

	now := s.now()
	if prev.Expired(now) {
		s.purge(ctx, email, "expired")
		return StartResult{}, sessionExpired
	}

	next := prev
	if err := s.issueCode(ctx, &next, prev, true, now); err != nil {
		return StartResult{}, err
	}

	log.Info("code resent")
	return StartResult{Email: next.Email, ExpiresAt: next.ExpiresAt}, nil
}

// purge drops the pending entry for email. Failures are logged only: the
// caller's outcome is already decided and housekeeping retries later.
func (s *RegistrationService) purge(ctx context.Context, email, why string) {
	if err := s.Ledger.Delete(ctx, email); err != nil {
		slogx.FromContext(ctx).Error("failed to delete pending registration",
			slog.String("reason", why),
			slog.Any("error", err),
		)
	}
}
