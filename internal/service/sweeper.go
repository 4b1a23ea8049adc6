package service

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/abdullah-alholiel/mutualtasks/internal/repository"
)

// Sweeper is the scheduled job that archives past-due uncompleted statuses.
// It is the only component that turns clock time into archival marks; the
// status resolver just reads whatever the sweep left behind.
type Sweeper struct {
	cron       *cron.Cron
	statusRepo repository.StatusRepositoryI
	interval   time.Duration
}

func NewSweeper(statusRepo repository.StatusRepositoryI, interval time.Duration) *Sweeper {
	if statusRepo == nil {
		log.Fatal("provided nil statusRepo for sweeper")
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		cron:       cron.New(),
		statusRepo: statusRepo,
		interval:   interval,
	}
}

func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc("@every "+s.interval.String(), s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	count, err := s.statusRepo.SweepDue(ctx, time.Now())
	if err != nil {
		slog.Error("archival sweep failed", slog.String("error", err.Error()))
		return
	}
	if count > 0 {
		slog.Info("archival sweep finished", slog.Int("archived", count))
	}
}
