package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/coursetrack/internal/catalog"
	"github.com/alexanderramin/coursetrack/internal/deadline"
	"github.com/alexanderramin/coursetrack/internal/domain"
	"github.com/alexanderramin/coursetrack/internal/progress"
	"github.com/alexanderramin/coursetrack/internal/scoring"
)

type trackerService struct {
	catalog  *catalog.Catalog
	store    *progress.Store
	observer UseCaseObserver
}

func NewTrackerService(
	cat *catalog.Catalog,
	store *progress.Store,
	observers ...UseCaseObserver,
) Tracker {
	return &trackerService{
		catalog:  cat,
		store:    store,
		observer: useCaseObserverOrNoop(observers),
	}
}

// observe reports a use case when the returned func runs. Call as
// defer s.observe(ctx, name, fields)(&err).
func (s *trackerService) observe(ctx context.Context, name string, fields map[string]any) func(*error) {
	startedAt := time.Now()
	return func(errp *error) {
		var err error
		if errp != nil {
			err = *errp
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}
}

func (s *trackerService) courses() []domain.Course {
	return s.catalog.Courses
}

func (s *trackerService) CurrentWeek(context.Context) int {
	return deadline.CurrentWeek(s.catalog.Start, s.store.Now())
}

func (s *trackerService) Overview(ctx context.Context) (view *OverviewView, err error) {
	defer s.observe(ctx, "overview", nil)(&err)

	now := s.store.Now()
	p := s.store.Snapshot()
	week := deadline.CurrentWeek(s.catalog.Start, now)
	end := deadline.WeekEnd(s.catalog.Start, week)
	return &OverviewView{
		Term:          s.catalog.Term,
		Now:           now,
		CurrentWeek:   week,
		WeekEnd:       end,
		DaysToWeekEnd: deadline.DaysUntil(end, now),
		Stats:         scoring.Overview(s.courses(), p),
		Courses:       s.summaries(p, week),
		Deadlines:     deadline.CriticalItems(s.courses(), p, now),
	}, nil
}

func (s *trackerService) Courses(ctx context.Context) (out []CourseSummary, err error) {
	defer s.observe(ctx, "courses", nil)(&err)

	return s.summaries(s.store.Snapshot(), s.CurrentWeek(ctx)), nil
}

func (s *trackerService) summaries(p *domain.Progress, week int) []CourseSummary {
	courses := s.courses()
	out := make([]CourseSummary, 0, len(courses))
	for i := range courses {
		c := &courses[i]
		out = append(out, CourseSummary{
			Course:   c,
			Score:    scoring.CourseScore(c, p),
			Workload: deadline.WorkloadFor(c, p, week),
		})
	}
	return out
}

func (s *trackerService) CourseDetail(ctx context.Context, courseID string) (detail *CourseDetail, err error) {
	defer s.observe(ctx, "course_detail", map[string]any{"course": courseID})(&err)

	course, ok := s.catalog.Course(courseID)
	if !ok {
		return nil, fmt.Errorf("course %q: %w", courseID, ErrNotFound)
	}
	now := s.store.Now()
	p := s.store.Snapshot()
	current := deadline.CurrentWeek(s.catalog.Start, now)

	detail = &CourseDetail{
		Course:      course,
		Score:       scoring.CourseScore(course, p),
		CurrentWeek: current,
		Weeks:       make([]WeekView, 0, len(course.Weeks)),
	}
	for i := range course.Weeks {
		detail.Weeks = append(detail.Weeks, buildWeekView(course, &course.Weeks[i], p, current))
	}
	for i := range course.Assessments {
		a := &course.Assessments[i]
		detail.Assessments = append(detail.Assessments, AssessmentView{
			Item:     deadline.Resolve(course, a, p, now),
			Critical: deadline.IsCritical(a),
		})
	}
	return detail, nil
}

func (s *trackerService) Week(ctx context.Context, courseID string, number int) (view *WeekView, err error) {
	defer s.observe(ctx, "week", map[string]any{"course": courseID, "week": number})(&err)

	course, week, err := s.lookupWeek(courseID, number)
	if err != nil {
		return nil, err
	}
	v := buildWeekView(course, week, s.store.Snapshot(), s.CurrentWeek(ctx))
	return &v, nil
}

func buildWeekView(course *domain.Course, week *domain.Week, p *domain.Progress, current int) WeekView {
	note, hasNote := p.WeekNotes[week.ID]
	v := WeekView{
		CourseID: course.ID,
		Week:     week,
		Current:  week.Number == current,
		Score:    scoring.WeekScore(course.ID, week, p),
		Note:     note,
		HasNote:  hasNote,
	}
	for _, t := range deadline.MergedTasks(course.ID, week, p) {
		v.Tasks = append(v.Tasks, TaskView{ID: t.ID, Text: t.Text, Custom: t.Custom, Done: p.IsCompleted(t.ID)})
	}
	for _, lo := range week.LearningOutcomes {
		rec, rated := p.DifficultyLevels[lo.ID]
		v.Outcomes = append(v.Outcomes, OutcomeView{
			ID:      lo.ID,
			Text:    lo.Text,
			Level:   p.Difficulty(lo.ID),
			Rated:   rated,
			History: rec.Dates,
		})
	}
	return v
}

func (s *trackerService) Deadlines(ctx context.Context) (items []deadline.CriticalItem, err error) {
	defer s.observe(ctx, "deadlines", nil)(&err)

	return deadline.CriticalItems(s.courses(), s.store.Snapshot(), s.store.Now()), nil
}

func (s *trackerService) Workload(ctx context.Context, week int) (view *WorkloadView, err error) {
	defer s.observe(ctx, "workload", map[string]any{"week": week})(&err)

	current := s.CurrentWeek(ctx)
	if week == 0 {
		week = current
	}
	if week < 1 || week > deadline.TermWeeks {
		return nil, fmt.Errorf("week %d outside 1-%d: %w", week, deadline.TermWeeks, ErrInvalidWeek)
	}
	return &WorkloadView{
		Week:    week,
		Current: week == current,
		WeekEnd: deadline.WeekEnd(s.catalog.Start, week),
		Courses: deadline.WeeklyWorkload(s.courses(), s.store.Snapshot(), week),
	}, nil
}

func (s *trackerService) lookupWeek(courseID string, number int) (*domain.Course, *domain.Week, error) {
	course, week, ok := s.catalog.Week(courseID, number)
	if ok {
		return course, week, nil
	}
	if course == nil {
		return nil, nil, fmt.Errorf("course %q: %w", courseID, ErrNotFound)
	}
	return nil, nil, fmt.Errorf("course %q week %d: %w", courseID, number, ErrNotFound)
}

// isCustomTask reports whether id names a custom task in any course week.
func isCustomTask(p *domain.Progress, id string) bool {
	for _, tasks := range p.CustomTasks {
		for _, t := range tasks {
			if t.ID == id {
				return true
			}
		}
	}
	return false
}

func (s *trackerService) ToggleTask(ctx context.Context, taskID string) (done bool, err error) {
	fields := map[string]any{"task": taskID}
	defer s.observe(ctx, "toggle_task", fields)(&err)

	if _, _, ok := s.catalog.TaskWeek(taskID); !ok && !isCustomTask(s.store.Snapshot(), taskID) {
		return false, fmt.Errorf("task %q: %w", taskID, ErrNotFound)
	}
	done = s.store.ToggleTask(ctx, taskID)
	fields["done"] = done
	return done, nil
}

func (s *trackerService) SetDifficulty(ctx context.Context, loID, level string) (err error) {
	defer s.observe(ctx, "set_difficulty", map[string]any{"outcome": loID, "level": level})(&err)

	if _, _, ok := s.catalog.OutcomeWeek(loID); !ok {
		return fmt.Errorf("learning outcome %q: %w", loID, ErrNotFound)
	}
	return s.store.SetDifficulty(ctx, loID, domain.Difficulty(strings.ToLower(level)))
}

func (s *trackerService) Note(ctx context.Context, weekID string) (note string, err error) {
	defer s.observe(ctx, "note", map[string]any{"week": weekID})(&err)

	if _, _, ok := s.catalog.WeekByID(weekID); !ok {
		return "", fmt.Errorf("week %q: %w", weekID, ErrNotFound)
	}
	return s.store.Snapshot().WeekNotes[weekID], nil
}

func (s *trackerService) SaveNote(ctx context.Context, weekID, text string) (err error) {
	defer s.observe(ctx, "save_note", map[string]any{"week": weekID, "length": len(text)})(&err)

	if _, _, ok := s.catalog.WeekByID(weekID); !ok {
		return fmt.Errorf("week %q: %w", weekID, ErrNotFound)
	}
	s.store.SaveNote(ctx, weekID, text)
	return nil
}

func (s *trackerService) AddCustomTask(ctx context.Context, courseID string, week int, text string) (task domain.CustomTask, err error) {
	fields := map[string]any{"course": courseID, "week": week}
	defer s.observe(ctx, "add_custom_task", fields)(&err)

	if _, _, err = s.lookupWeek(courseID, week); err != nil {
		return domain.CustomTask{}, err
	}
	task, err = s.store.AddCustomTask(ctx, courseID, week, text)
	if err != nil {
		return domain.CustomTask{}, err
	}
	fields["task"] = task.ID
	return task, nil
}

func (s *trackerService) DeleteCustomTask(ctx context.Context, courseID string, week int, taskID string) (err error) {
	defer s.observe(ctx, "delete_custom_task", map[string]any{"course": courseID, "week": week, "task": taskID})(&err)

	if _, _, err = s.lookupWeek(courseID, week); err != nil {
		return err
	}
	found := false
	for _, t := range s.store.Snapshot().CustomTasksFor(courseID, week) {
		if t.ID == taskID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("custom task %q in %s: %w", taskID, domain.CustomTaskKey(courseID, week), ErrNotFound)
	}
	s.store.DeleteCustomTask(ctx, courseID, week, taskID)
	return nil
}

// SetAssessmentDate overrides an assessment date. The empty string clears
// the override; anything else must be YYYY-MM-DD.
func (s *trackerService) SetAssessmentDate(ctx context.Context, assessmentID, date string) (err error) {
	defer s.observe(ctx, "set_assessment_date", map[string]any{"assessment": assessmentID, "date": date})(&err)

	if _, _, ok := s.catalog.Assessment(assessmentID); !ok {
		return fmt.Errorf("assessment %q: %w", assessmentID, ErrNotFound)
	}
	date = strings.TrimSpace(date)
	if date != "" {
		if _, perr := time.Parse("2006-01-02", date); perr != nil {
			return fmt.Errorf("%q (use YYYY-MM-DD): %w", date, ErrInvalidDate)
		}
	}
	s.store.SetAssessmentDate(ctx, assessmentID, date)
	return nil
}

func (s *trackerService) MarkWeekDone(ctx context.Context, courseID string, week int) (cleared deadline.Workload, err error) {
	fields := map[string]any{"course": courseID, "week": week}
	defer s.observe(ctx, "mark_week_done", fields)(&err)

	course, _, err := s.lookupWeek(courseID, week)
	if err != nil {
		return deadline.Workload{}, err
	}
	cleared = deadline.WorkloadFor(course, s.store.Snapshot(), week)
	fields["tasks"] = len(cleared.PendingTasks)
	fields["outcomes"] = len(cleared.PendingLOs)
	if cleared.Complete() {
		return cleared, nil
	}
	s.store.MarkDone(ctx, cleared.TaskIDs(), cleared.LOIDs())
	return cleared, nil
}
