package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/domain"
)

// RetentionSweeper purges audit entries older than the configured horizon.
// It runs on its own schedule and never touches the decision windows, which
// always look back from wall-clock now.
type RetentionSweeper struct {
	repo      domain.SecurityRepository
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	log       *slog.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewRetentionSweeper(repo domain.SecurityRepository, retention time.Duration) *RetentionSweeper {
	return &RetentionSweeper{
		repo:      repo,
		retention: retention,
		interval:  24 * time.Hour,
		now:       time.Now,
		log:       slog.Default().With("component", "audit-retention"),
	}
}

func (s *RetentionSweeper) Start() {
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go func() {
		defer close(s.doneCh)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.SweepOnce(context.Background())
			}
		}
	}()
}

func (s *RetentionSweeper) Stop() {
	if s.stopCh == nil {
		return
	}
	close(s.stopCh)
	<-s.doneCh
	s.stopCh = nil
}

func (s *RetentionSweeper) SweepOnce(ctx context.Context) {
	cutoff := s.now().Add(-s.retention)
	deleted, err := s.repo.DeleteAuditEntriesBefore(ctx, cutoff)
	if err != nil {
		s.log.Error("audit retention sweep failed", "error", err)
		return
	}
	if deleted > 0 {
		s.log.Info("purged old audit entries", "deleted", deleted, "cutoff", cutoff)
	}
}
