package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSchedule runs the check hourly, counted from start.
const DefaultSchedule = "@every 1h"

// Scheduler runs a Checker once at start and then on a cron schedule.
type Scheduler struct {
	checker  *Checker
	schedule string
	now      func() time.Time
	log      *zap.Logger
}

type SchedulerOption func(*Scheduler)

func WithSchedule(spec string) SchedulerOption {
	return func(s *Scheduler) {
		if spec != "" {
			s.schedule = spec
		}
	}
}

func WithSchedulerClock(now func() time.Time) SchedulerOption {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

func WithSchedulerLogger(l *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

func NewScheduler(checker *Checker, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		checker:  checker,
		schedule: DefaultSchedule,
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.schedule, func() { s.tick(ctx) }); err != nil {
		return fmt.Errorf("schedule deadline check %q: %w", s.schedule, err)
	}

	s.tick(ctx)
	c.Start()
	s.log.Info("deadline checks scheduled", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.log.Info("deadline checks stopped")
	return nil
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	alerts := s.checker.Check(ctx, s.now())
	s.log.Debug("deadline check ran", zap.Int("alerts", len(alerts)))
}
