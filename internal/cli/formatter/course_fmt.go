package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/coursetrack/internal/service"
)

// FormatCourseDetail renders a course: its link, outcomes, weekly scores and
// assessments.
func FormatCourseDetail(d *service.CourseDetail) string {
	var b strings.Builder
	c := d.Course

	fmt.Fprintf(&b, "%s  %s\n", CourseCode(c.Code, c.Color), Bold(c.Name))
	if c.URL != "" {
		b.WriteString(Dim(c.URL) + "\n")
	}
	b.WriteString("\n" + RenderPercent(d.Score.Percent, 24) + "\n")

	if len(c.LearningOutcomes) > 0 {
		b.WriteString("\n" + Header("Learning outcomes") + "\n")
		for _, lo := range c.LearningOutcomes {
			b.WriteString("  • " + lo + "\n")
		}
	}

	b.WriteString("\n" + Header("Weeks") + "\n")
	rows := make([][]string, 0, len(d.Weeks))
	for _, w := range d.Weeks {
		marker := " "
		if w.Current {
			marker = StyleHeader.Render("▶")
		}
		note := ""
		if w.HasNote && w.Note != "" {
			note = StylePurple.Render("✎")
		}
		rows = append(rows, []string{
			marker + fmt.Sprintf("%2d", w.Week.Number),
			w.Week.Title,
			Dim(w.Week.DateRange),
			RenderPercent(w.Score.Percent, 10),
			note,
		})
	}
	b.WriteString(RenderTable([]string{"WK", "TITLE", "DATES", "PROGRESS", "NOTE"}, rows))

	if len(d.Assessments) > 0 {
		b.WriteString("\n" + Header("Assessments") + "\n")
		rows = rows[:0]
		for _, a := range d.Assessments {
			name := a.Item.Assessment.Name
			if a.Critical {
				name = StyleRed.Render("★ ") + name
			}
			rows = append(rows, []string{
				Dim(a.Item.Assessment.ID),
				name,
				a.Item.Assessment.Weight,
				assessmentDate(a),
			})
		}
		b.WriteString(RenderTable([]string{"ID", "ASSESSMENT", "WEIGHT", "DATE"}, rows))
	}

	return RenderBox(c.Code, b.String())
}

func assessmentDate(a service.AssessmentView) string {
	it := a.Item
	switch {
	case it.InvalidDate():
		return StyleRed.Render(it.DisplayDate + " ?")
	case it.Date == nil:
		if it.Assessment.Date != "" {
			return Dim(it.Assessment.Date)
		}
		return Dim("no date")
	case it.Overridden:
		return it.DisplayDate + StylePurple.Render(" (set)")
	default:
		return it.DisplayDate
	}
}
