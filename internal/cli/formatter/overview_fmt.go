package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/coursetrack/internal/service"
)

const overviewBarWidth = 20

// FormatOverview renders the dashboard header, the course list and the
// nearest deadlines.
func FormatOverview(v *service.OverviewView) string {
	var b strings.Builder
	s := v.Stats

	fmt.Fprintf(&b, "%s  %s\n", Bold(v.Term), Dim(fmt.Sprintf("week %d of 14", v.CurrentWeek)))
	fmt.Fprintf(&b, "%s %s  %s\n\n",
		Dim("Week ends"),
		v.WeekEnd.Format("Mon Jan 2"),
		DaysLeft(v.DaysToWeekEnd),
	)

	fmt.Fprintf(&b, "%-16s %s  %s\n", "Tasks", RenderPercent(s.TaskPercent, overviewBarWidth),
		Dim(fmt.Sprintf("%d/%d done", s.CompletedTasks, s.TotalTasks)))
	fmt.Fprintf(&b, "%-16s %s\n", "Weighted", RenderPercent(s.Weighted.Percent, overviewBarWidth))
	fmt.Fprintf(&b, "%-16s %s  %s\n", "Mastery", RenderPercent(s.Mastery.Score, overviewBarWidth),
		Dim(fmt.Sprintf("%d easy · %d medium · %d hard", s.Mastery.Easy, s.Mastery.Medium, s.Mastery.Hard)))
	b.WriteString("\n")

	b.WriteString(FormatCourses(v.Courses))

	if len(v.Deadlines) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Critical deadlines") + "\n")
		limit := min(len(v.Deadlines), 5)
		b.WriteString(deadlineRows(v.Deadlines[:limit]))
		if len(v.Deadlines) > limit {
			b.WriteString(Dim(fmt.Sprintf("… and %d more (coursetrack deadlines)", len(v.Deadlines)-limit)) + "\n")
		}
	}

	b.WriteString("\n" + Dim("Last saved "+SavedAt(s.LastSaved, v.Now)))
	return RenderBox("Course tracker", b.String())
}

// FormatCourses renders one row per course with its weighted score and what
// is left this week.
func FormatCourses(courses []service.CourseSummary) string {
	headers := []string{"CODE", "COURSE", "PROGRESS", "THIS WEEK", "ID"}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		week := StyleGreen.Render("✔ done")
		switch {
		case !c.Workload.HasWeek:
			week = Dim("no classes")
		case !c.Workload.Complete():
			week = StyleYellow.Render(fmt.Sprintf("%d left", c.Workload.TotalRemaining()))
		}
		rows = append(rows, []string{
			CourseCode(c.Course.Code, c.Course.Color),
			c.Course.Name,
			RenderPercent(c.Score.Percent, 10),
			week,
			Dim(c.Course.ID),
		})
	}
	return RenderTable(headers, rows)
}
