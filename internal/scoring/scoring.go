// Package scoring computes completion percentages from the catalog and the
// progress record. Every task weighs 1 and earns 1 when completed; every
// learning outcome weighs 1 and earns its difficulty's mastery (easy 1,
// medium 0.5, hard 0). The same rule applies at week, course and global scope.
package scoring

import (
	"math"

	"github.com/alexanderramin/coursetrack/internal/domain"
)

// Score is the weighted tally for one scope.
type Score struct {
	TotalTasks     int
	CompletedTasks int
	TotalLOs       int
	EarnedLO       float64
	Percent        int
}

// TotalWeight is the denominator of Percent.
func (s Score) TotalWeight() int {
	return s.TotalTasks + s.TotalLOs
}

// EarnedWeight is the numerator of Percent.
func (s Score) EarnedWeight() float64 {
	return float64(s.CompletedTasks) + s.EarnedLO
}

func (s *Score) add(o Score) {
	s.TotalTasks += o.TotalTasks
	s.CompletedTasks += o.CompletedTasks
	s.TotalLOs += o.TotalLOs
	s.EarnedLO += o.EarnedLO
}

func (s Score) finish() Score {
	s.Percent = Percent(s.EarnedWeight(), float64(s.TotalWeight()))
	return s
}

// Percent returns round(100 * earned / total), or 0 when total is 0.
// Halves round up.
func Percent(earned, total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(earned/total*100 + 0.5))
}

// WeekScore scores one week: its core tasks, the custom tasks filed under
// the course week, and its learning outcomes.
func WeekScore(courseID string, week *domain.Week, p *domain.Progress) Score {
	return weekTally(courseID, week, p).finish()
}

func weekTally(courseID string, week *domain.Week, p *domain.Progress) Score {
	var s Score
	for _, t := range week.Tasks {
		s.TotalTasks++
		if p.IsCompleted(t.ID) {
			s.CompletedTasks++
		}
	}
	for _, t := range p.CustomTasksFor(courseID, week.Number) {
		s.TotalTasks++
		if p.IsCompleted(t.ID) {
			s.CompletedTasks++
		}
	}
	for _, lo := range week.LearningOutcomes {
		s.TotalLOs++
		s.EarnedLO += p.Difficulty(lo.ID).Mastery()
	}
	return s
}

// CourseScore sums every week of a course.
func CourseScore(course *domain.Course, p *domain.Progress) Score {
	var s Score
	for i := range course.Weeks {
		s.add(weekTally(course.ID, &course.Weeks[i], p))
	}
	return s.finish()
}

// GlobalScore sums every course.
func GlobalScore(courses []domain.Course, p *domain.Progress) Score {
	var s Score
	for i := range courses {
		c := &courses[i]
		for j := range c.Weeks {
			s.add(weekTally(c.ID, &c.Weeks[j], p))
		}
	}
	return s.finish()
}

// MasteryStats counts learning outcomes by level.
type MasteryStats struct {
	Total  int
	Easy   int
	Medium int
	Hard   int
	Score  int
}

// Mastery scores learning outcomes only: the mean of 100/50/0 per outcome,
// rounded, and 0 when there are none.
func Mastery(courses []domain.Course, p *domain.Progress) MasteryStats {
	var m MasteryStats
	for _, c := range courses {
		for _, w := range c.Weeks {
			for _, lo := range w.LearningOutcomes {
				m.Total++
				switch p.Difficulty(lo.ID) {
				case domain.DifficultyEasy:
					m.Easy++
				case domain.DifficultyMedium:
					m.Medium++
				default:
					m.Hard++
				}
			}
		}
	}
	if m.Total > 0 {
		points := float64(m.Easy*100 + m.Medium*50 + m.Hard*0)
		m.Score = Percent(points, float64(m.Total*100))
	}
	return m
}
