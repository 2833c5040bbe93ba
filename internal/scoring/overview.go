package scoring

import "github.com/alexanderramin/coursetrack/internal/domain"

// OverviewStats is the dashboard header: task-only completion, the weighted
// global score and the mastery breakdown.
type OverviewStats struct {
	TotalTasks     int
	CompletedTasks int
	TaskPercent    int
	Weighted       Score
	Mastery        MasteryStats
	LastSaved      string
}

// Overview computes the global header numbers.
func Overview(courses []domain.Course, p *domain.Progress) OverviewStats {
	global := GlobalScore(courses, p)
	return OverviewStats{
		TotalTasks:     global.TotalTasks,
		CompletedTasks: global.CompletedTasks,
		TaskPercent:    Percent(float64(global.CompletedTasks), float64(global.TotalTasks)),
		Weighted:       global,
		Mastery:        Mastery(courses, p),
		LastSaved:      p.LastSaved,
	}
}
