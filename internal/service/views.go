package service

import (
	"time"

	"github.com/alexanderramin/coursetrack/internal/deadline"
	"github.com/alexanderramin/coursetrack/internal/domain"
	"github.com/alexanderramin/coursetrack/internal/scoring"
)

// OverviewView is the dashboard header plus one line per course.
type OverviewView struct {
	Term          string
	Now           time.Time
	CurrentWeek   int
	WeekEnd       time.Time
	DaysToWeekEnd int
	Stats         scoring.OverviewStats
	Courses       []CourseSummary
	Deadlines     []deadline.CriticalItem
}

type CourseSummary struct {
	Course   *domain.Course
	Score    scoring.Score
	Workload deadline.Workload
}

type TaskView struct {
	ID     string
	Text   string
	Custom bool
	Done   bool
}

type OutcomeView struct {
	ID      string
	Text    string
	Level   domain.Difficulty
	Rated   bool
	History []string
}

type WeekView struct {
	CourseID string
	Week     *domain.Week
	Current  bool
	Score    scoring.Score
	Note     string
	HasNote  bool
	Tasks    []TaskView
	Outcomes []OutcomeView
}

// PendingCount is the number of undone tasks and unmastered outcomes.
func (w WeekView) PendingCount() int {
	n := 0
	for _, t := range w.Tasks {
		if !t.Done {
			n++
		}
	}
	for _, o := range w.Outcomes {
		if o.Level != domain.DifficultyEasy {
			n++
		}
	}
	return n
}

type AssessmentView struct {
	Item     deadline.CriticalItem
	Critical bool
}

type CourseDetail struct {
	Course      *domain.Course
	Score       scoring.Score
	CurrentWeek int
	Weeks       []WeekView
	Assessments []AssessmentView
}

type WorkloadView struct {
	Week    int
	Current bool
	WeekEnd time.Time
	Courses []deadline.Workload
}

// Remaining sums what is left across courses.
func (w WorkloadView) Remaining() int {
	n := 0
	for _, c := range w.Courses {
		n += c.TotalRemaining()
	}
	return n
}
