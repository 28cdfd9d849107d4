package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// NoShowMarker помечает брони, на которые гости не пришли
type NoShowMarker interface {
	MarkOverdueNoShows(ctx context.Context, grace time.Duration) (int, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	bookings NoShowMarker
	interval time.Duration
	grace    time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler создаёт планировщик, который раз в interval ищет неявки старше grace
func NewScheduler(bookings NoShowMarker, interval, grace time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		bookings: bookings,
		interval: interval,
		grace:    grace,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("interval", s.interval),
		zap.Duration("grace", s.grace))

	go s.runNoShowTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт завершения текущего прохода
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	<-s.done
}

func (s *Scheduler) runNoShowTask(ctx context.Context) {
	defer close(s.done)

	// Первый проход сразу при старте
	s.markNoShows(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.markNoShows(ctx)
		case <-s.stopChan:
			s.logger.Info("No-show task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("No-show task cancelled")
			return
		}
	}
}

func (s *Scheduler) markNoShows(ctx context.Context) {
	marked, err := s.bookings.MarkOverdueNoShows(ctx, s.grace)
	if err != nil {
		s.logger.Error("Failed to mark no-shows", zap.Error(err))
		return
	}

	if marked > 0 {
		s.logger.Info("Bookings marked as no-show", zap.Int("count", marked))
	}
}
