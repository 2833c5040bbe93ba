package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/coursetrack/internal/domain"
)

// TermStart is the week-1 epoch used by fixture catalogs.
var TermStart = time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)

// Clock is a settable clock for code that reads "now" through a func.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current fixture time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set jumps to an absolute time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Course options
type CourseOption func(*domain.Course)

func WithWeeks(weeks ...domain.Week) CourseOption {
	return func(c *domain.Course) {
		c.Weeks = append(c.Weeks, weeks...)
	}
}

func WithAssessments(as ...domain.Assessment) CourseOption {
	return func(c *domain.Course) {
		c.Assessments = append(c.Assessments, as...)
	}
}

func NewTestCourse(id string, opts ...CourseOption) domain.Course {
	c := domain.Course{
		ID:    id,
		Code:  fmt.Sprintf("TST-%s", id),
		Name:  fmt.Sprintf("Course %s", id),
		URL:   "https://example.com/" + id,
		Color: "programming",
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewTestWeek builds week n of a course with the given number of core tasks
// and learning outcomes. Ids follow "<course>-w<n>-t<i>" and
// "<course>-w<n>-lo<i>".
func NewTestWeek(courseID string, n, tasks, outcomes int) domain.Week {
	w := domain.Week{
		ID:        fmt.Sprintf("%s-w%d", courseID, n),
		Number:    n,
		Title:     fmt.Sprintf("Week %d", n),
		DateRange: "fixture",
	}
	for i := 1; i <= tasks; i++ {
		w.Tasks = append(w.Tasks, domain.Task{
			ID:   fmt.Sprintf("%s-w%d-t%d", courseID, n, i),
			Text: fmt.Sprintf("Task %d", i),
		})
	}
	for i := 1; i <= outcomes; i++ {
		w.LearningOutcomes = append(w.LearningOutcomes, domain.LearningOutcome{
			ID:   fmt.Sprintf("%s-w%d-lo%d", courseID, n, i),
			Text: fmt.Sprintf("Outcome %d", i),
		})
	}
	return w
}

// Assessment options
type AssessmentOption func(*domain.Assessment)

func AsExam() AssessmentOption {
	return func(a *domain.Assessment) {
		a.IsExam = true
	}
}

func WithDate(date string) AssessmentOption {
	return func(a *domain.Assessment) {
		a.Date = date
	}
}

func NewTestAssessment(id, name string, opts ...AssessmentOption) domain.Assessment {
	a := domain.Assessment{
		ID:          id,
		Name:        name,
		Description: "fixture",
		Weight:      "10%",
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// NewTestCatalog wraps courses in a catalog starting at TermStart.
func NewTestCatalog(courses ...domain.Course) domain.Catalog {
	return domain.Catalog{
		Term:      "Fixture Term",
		StartDate: TermStart.Format("2006-01-02"),
		Start:     TermStart,
		Courses:   courses,
	}
}
