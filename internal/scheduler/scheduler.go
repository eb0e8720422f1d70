package scheduler

import (
	"context"
	"time"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/wb-go/wbf/logger"
)

type capacityReconciler interface {
	ReconcileCapacity(ctx context.Context) ([]domain.CapacityDrift, error)
}

// Scheduler periodically recomputes each event's booked counter from its
// active bookings and logs every repaired drift.
type Scheduler struct {
	reconciler capacityReconciler
	interval   time.Duration
	logger     logger.Logger
}

func New(
	reconciler capacityReconciler,
	interval time.Duration,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		reconciler: reconciler,
		interval:   interval,
		logger:     logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("capacity reconciler started",
		logger.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("capacity reconciler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs one reconciliation and returns how many drifts it reported.
func (s *Scheduler) tick(ctx context.Context) int {
	drifts, err := s.reconciler.ReconcileCapacity(ctx)
	if err != nil {
		s.logger.Error("failed to reconcile capacity",
			logger.String("error", err.Error()),
		)
		// частичный результат всё равно логируем
	}

	for _, d := range drifts {
		s.logger.Warn("capacity drift repaired",
			logger.String("event_id", d.EventID),
			logger.Int("recorded", d.Recorded),
			logger.Int("actual", d.Actual),
		)
	}
	return len(drifts)
}
