package alert

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/coursetrack/internal/deadline"
	"github.com/alexanderramin/coursetrack/internal/domain"
)

const examHorizon = 30 * 24 * time.Hour

// examReminderDays are the distances at which an exam reminder fires.
var examReminderDays = map[int]bool{30: true, 14: true, 7: true, 1: true}

// Checker turns the catalog and the current progress into reminders.
type Checker struct {
	courses  []domain.Course
	start    time.Time
	progress func() *domain.Progress
	notifier Notifier
	log      *zap.Logger
	onAlert  func(Alert)
}

type CheckerOption func(*Checker)

func WithCheckerLogger(l *zap.Logger) CheckerOption {
	return func(c *Checker) {
		if l != nil {
			c.log = l
		}
	}
}

// WithDispatchHook is called after every alert the notifier accepts.
func WithDispatchHook(fn func(Alert)) CheckerOption {
	return func(c *Checker) {
		c.onAlert = fn
	}
}

// NewChecker builds a checker. progress is called on every check so each run
// sees the latest record.
func NewChecker(courses []domain.Course, start time.Time, progress func() *domain.Progress, n Notifier, opts ...CheckerOption) *Checker {
	c := &Checker{
		courses:  courses,
		start:    start,
		progress: progress,
		notifier: n,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check computes the alerts due at now and hands each to the notifier.
// Notifier failures are logged and skipped.
func (c *Checker) Check(ctx context.Context, now time.Time) []Alert {
	p := c.progress()
	alerts := append(c.examAlerts(p, now), c.weekAlerts(p, now)...)

	sent := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if err := c.notifier.Notify(ctx, a); err != nil {
			c.log.Warn("alert not delivered", zap.String("tag", a.Tag), zap.Error(err))
			continue
		}
		sent = append(sent, a)
		if c.onAlert != nil {
			c.onAlert(a)
		}
	}
	return sent
}

func (c *Checker) examAlerts(p *domain.Progress, now time.Time) []Alert {
	var out []Alert
	horizon := now.Add(examHorizon)
	for i := range c.courses {
		course := &c.courses[i]
		for j := range course.Assessments {
			a := &course.Assessments[j]
			if !a.IsExam {
				continue
			}
			item := deadline.Resolve(course, a, p, now)
			if item.Date == nil || item.Date.Before(now) || item.Date.After(horizon) {
				continue
			}
			days := *item.DaysUntil
			if !examReminderDays[days] {
				continue
			}
			out = append(out, Alert{
				Kind:  KindExam,
				Title: "Exam Reminder: " + a.Name,
				Body:  fmt.Sprintf("%s - %d %s remaining!", course.Name, days, plural(days, "day")),
				Tag:   fmt.Sprintf("exam-%s-%d", a.ID, days),
			})
		}
	}
	return out
}

func (c *Checker) weekAlerts(p *domain.Progress, now time.Time) []Alert {
	next := deadline.CurrentWeek(c.start, now) + 1
	if next > deadline.TermWeeks {
		return nil
	}
	var out []Alert
	for i := range c.courses {
		course := &c.courses[i]
		pending := len(deadline.WorkloadFor(course, p, next).PendingTasks)
		if pending == 0 {
			continue
		}
		out = append(out, Alert{
			Kind:  KindWeek,
			Title: fmt.Sprintf("Week %d Tasks Coming Up", next),
			Body:  fmt.Sprintf("%s: %d %s to complete", course.Name, pending, plural(pending, "task")),
			Tag:   fmt.Sprintf("week-%s-%d", course.ID, next),
		})
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
