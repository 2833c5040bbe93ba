package deadline

import "github.com/alexanderramin/coursetrack/internal/domain"

// WorkloadTask is a core or custom task in a week's merged list.
type WorkloadTask struct {
	ID     string
	Text   string
	Custom bool
}

// Workload is what remains for one course in one week.
type Workload struct {
	CourseID     string
	CourseCode   string
	CourseName   string
	CourseColor  string
	Week         int
	HasWeek      bool
	PendingTasks []WorkloadTask
	PendingLOs   []domain.LearningOutcome
}

// TotalRemaining counts pending tasks and outcomes.
func (w Workload) TotalRemaining() int {
	return len(w.PendingTasks) + len(w.PendingLOs)
}

// Complete reports whether nothing remains.
func (w Workload) Complete() bool {
	return w.TotalRemaining() == 0
}

// TaskIDs returns the pending task ids.
func (w Workload) TaskIDs() []string {
	ids := make([]string, len(w.PendingTasks))
	for i, t := range w.PendingTasks {
		ids[i] = t.ID
	}
	return ids
}

// LOIDs returns the pending learning-outcome ids.
func (w Workload) LOIDs() []string {
	ids := make([]string, len(w.PendingLOs))
	for i, lo := range w.PendingLOs {
		ids[i] = lo.ID
	}
	return ids
}

// MergedTasks returns a week's core tasks followed by its custom tasks.
func MergedTasks(courseID string, week *domain.Week, p *domain.Progress) []WorkloadTask {
	custom := p.CustomTasksFor(courseID, week.Number)
	tasks := make([]WorkloadTask, 0, len(week.Tasks)+len(custom))
	for _, t := range week.Tasks {
		tasks = append(tasks, WorkloadTask{ID: t.ID, Text: t.Text})
	}
	for _, t := range custom {
		tasks = append(tasks, WorkloadTask{ID: t.ID, Text: t.Text, Custom: true})
	}
	return tasks
}

// WorkloadFor computes one course's workload. A course without that week
// number has an empty, complete workload.
func WorkloadFor(course *domain.Course, p *domain.Progress, week int) Workload {
	w := Workload{
		CourseID:    course.ID,
		CourseCode:  course.Code,
		CourseName:  course.Name,
		CourseColor: course.Color,
		Week:        week,
	}
	wk, ok := course.FindWeek(week)
	if !ok {
		return w
	}
	w.HasWeek = true
	for _, t := range MergedTasks(course.ID, wk, p) {
		if !p.IsCompleted(t.ID) {
			w.PendingTasks = append(w.PendingTasks, t)
		}
	}
	for _, lo := range wk.LearningOutcomes {
		if p.Difficulty(lo.ID) != domain.DifficultyEasy {
			w.PendingLOs = append(w.PendingLOs, lo)
		}
	}
	return w
}

// WeeklyWorkload computes the workload of every course for a week.
func WeeklyWorkload(courses []domain.Course, p *domain.Progress, week int) []Workload {
	out := make([]Workload, 0, len(courses))
	for i := range courses {
		out = append(out, WorkloadFor(&courses[i], p, week))
	}
	return out
}
