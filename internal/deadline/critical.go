package deadline

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/coursetrack/internal/domain"
)

// CriticalItem is an exam-like assessment with its resolved date.
type CriticalItem struct {
	CourseID    string
	CourseCode  string
	CourseName  string
	CourseColor string
	Assessment  domain.Assessment

	// DisplayDate is the override when one is set, else the catalog date
	// when it parses, else empty.
	DisplayDate string
	Overridden  bool
	// Date is nil when DisplayDate is empty or does not parse.
	Date      *time.Time
	DaysUntil *int
}

// MissingDate reports whether the item has no usable date.
func (c CriticalItem) MissingDate() bool {
	return c.Date == nil
}

// InvalidDate reports an override that is set but does not parse.
func (c CriticalItem) InvalidDate() bool {
	return c.DisplayDate != "" && c.Date == nil
}

// IsCritical reports whether an assessment counts as exam-like.
func IsCritical(a *domain.Assessment) bool {
	return a.IsExam || strings.Contains(strings.ToLower(a.Name), "summative")
}

// Resolve computes the display date of one assessment.
func Resolve(course *domain.Course, a *domain.Assessment, p *domain.Progress, now time.Time) CriticalItem {
	item := CriticalItem{
		CourseID:    course.ID,
		CourseCode:  course.Code,
		CourseName:  course.Name,
		CourseColor: course.Color,
		Assessment:  *a,
	}
	if override := p.AssessmentDates[a.ID]; override != "" {
		item.DisplayDate = override
		item.Overridden = true
	} else if _, ok := ParseDate(a.Date, now.Location()); ok {
		item.DisplayDate = a.Date
	}
	if item.DisplayDate == "" {
		return item
	}
	if t, ok := ParseDate(item.DisplayDate, now.Location()); ok {
		item.Date = &t
		days := DaysUntil(t, now)
		item.DaysUntil = &days
	}
	return item
}

// CriticalItems lists exam-like assessments that are undated, carry an
// unparseable override, or are still ahead. A bare date stays listed for the
// whole of its day; a timestamp drops out once it has passed. Dated items
// come first in date order; undated ones follow in catalog order.
func CriticalItems(courses []domain.Course, p *domain.Progress, now time.Time) []CriticalItem {
	today := startOfDay(now)
	var items []CriticalItem
	for i := range courses {
		c := &courses[i]
		for j := range c.Assessments {
			a := &c.Assessments[j]
			if !IsCritical(a) {
				continue
			}
			item := Resolve(c, a, p, now)
			if item.Date != nil && item.Date.Before(cutoff(item.DisplayDate, today, now)) {
				continue
			}
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Date, items[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return items
}

func cutoff(display string, today, now time.Time) time.Time {
	if _, err := time.Parse(time.DateOnly, display); err == nil {
		return today
	}
	return now
}
