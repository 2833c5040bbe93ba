package service

import (
	"context"

	"github.com/alexanderramin/coursetrack/internal/deadline"
	"github.com/alexanderramin/coursetrack/internal/domain"
)

// Tracker is the application surface the CLI and dashboard drive.
type Tracker interface {
	Overview(ctx context.Context) (*OverviewView, error)
	Courses(ctx context.Context) ([]CourseSummary, error)
	CourseDetail(ctx context.Context, courseID string) (*CourseDetail, error)
	Week(ctx context.Context, courseID string, number int) (*WeekView, error)
	Deadlines(ctx context.Context) ([]deadline.CriticalItem, error)
	// Workload reports one week across courses; week 0 means the current week.
	Workload(ctx context.Context, week int) (*WorkloadView, error)
	CurrentWeek(ctx context.Context) int
	// Note returns the saved note for a week id, empty when none is saved.
	Note(ctx context.Context, weekID string) (string, error)

	ToggleTask(ctx context.Context, taskID string) (bool, error)
	SetDifficulty(ctx context.Context, loID, level string) error
	SaveNote(ctx context.Context, weekID, text string) error
	AddCustomTask(ctx context.Context, courseID string, week int, text string) (domain.CustomTask, error)
	DeleteCustomTask(ctx context.Context, courseID string, week int, taskID string) error
	SetAssessmentDate(ctx context.Context, assessmentID, date string) error
	// MarkWeekDone completes what is pending in a course week and returns
	// the workload that was cleared.
	MarkWeekDone(ctx context.Context, courseID string, week int) (deadline.Workload, error)
}
