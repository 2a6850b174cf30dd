package service

import (
	"context"
	"log/slog"
	"time"
)

// DefaultPendingRetention is how long an expired pending registration is
// kept before housekeeping removes it.
const DefaultPendingRetention = time.Hour

// HousekeepingService periodically removes pending registrations that
// expired and were never verified or resent, so the ledger does not grow
// with abandoned sign-ups.
type HousekeepingService struct {
	Ledger    Ledger
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	// Clock defaults to time.Now.
	Clock func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A zero or negative
// interval defaults to 1 hour, a negative retention to DefaultPendingRetention.
func NewHousekeepingService(ledger Ledger, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention < 0 {
		retention = DefaultPendingRetention
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HousekeepingService{
		Ledger:    ledger,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		Clock:     time.Now,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. It is non-blocking; call Stop to
// shut the worker down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		slog.Duration("interval", s.Interval),
		slog.Duration("retention", s.Retention),
	)
}

// Stop shuts down the worker and blocks until any in-progress cleanup ends.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup removes every pending registration that expired more than
// Retention ago and returns how many were removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) (int, error) {
	now := time.Now
	if s.Clock != nil {
		now = s.Clock
	}
	cutoff := now().Add(-s.Retention)

	n, err := s.Ledger.PurgeExpired(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to purge expired pending registrations", slog.Any("error", err))
		return 0, err
	}

	pendingPurgedTotal.Add(float64(n))

	remaining, err := s.Ledger.Len(ctx)
	if err != nil {
		s.Logger.Warn("failed to count pending registrations", slog.Any("error", err))
		remaining = -1
	}

	s.Logger.Info("housekeeping cleanup completed",
		slog.Int("purged", n),
		slog.Int("pending", remaining),
	)
	return n, nil
}
