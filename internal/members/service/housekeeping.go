package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/rendezvous/internal/members/domain"
)

// purgeBatch caps how many photos one cleanup pass removes.
const purgeBatch = 100

// HousekeepingService periodically purges photos left rejected for longer
// than Retention, through the same blob-first delete as moderation.
type HousekeepingService struct {
	Moderation *ModerationService
	Logger     *slog.Logger
	Interval   time.Duration
	Retention  time.Duration
	Now        func() time.Time

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping service. A non-positive
// interval defaults to one hour and a non-positive retention to 30 days.
func NewHousekeepingService(
	moderation *ModerationService,
	logger *slog.Logger,
	interval, retention time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}

	return &HousekeepingService{
		Moderation: moderation,
		Logger:     logger,
		Interval:   interval,
		Retention:  retention,
		Now:        time.Now,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "retention", s.Retention)
}

// Stop shuts down the worker and waits for an in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	// Stop interrupts a cleanup in progress.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-s.stopCh
		cancel()
	}()

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup(ctx)

	for {
		select {
		case <-ticker.C:
			s.cleanup(ctx)
		case <-s.stopCh:
			return
		}
	}
}

// cleanup purges one batch of stale rejected photos and returns how many
// were removed. A photo whose blob can't be deleted stays for the next pass.
// It gives up at the next photo once ctx ends.
func (s *HousekeepingService) cleanup(ctx context.Context) int {
	cutoff := s.Now().Add(-s.Retention)

	stale, err := s.Moderation.Store.Photos().ListStaleInState(ctx, domain.PhotoRejected, cutoff, purgeBatch)
	if err != nil {
		s.Logger.Error("failed to list stale rejected photos", "error", err)
		return 0
	}
	if len(stale) == 0 {
		s.Logger.Debug("housekeeping found nothing to purge")
		return 0
	}

	var purged, failed int
	for _, p := range stale {
		if ctx.Err() != nil {
			s.Logger.Info("housekeeping cleanup interrupted", "purged", purged, "failed", failed)
			return purged
		}

		err := s.Moderation.purge(ctx, p)
		if errors.Is(err, errStateChanged) {
			s.Logger.Debug("skipping photo that left rejected state", "photo_id", p.ID)
			continue
		}
		if err != nil {
			s.Logger.Error("failed to purge rejected photo",
				"user_id", p.UserID, "photo_id", p.ID, "error", err)
			failed++
			continue
		}
		purged++
	}

	s.Logger.Info("housekeeping cleanup completed", "purged", purged, "failed", failed)
	return purged
}
