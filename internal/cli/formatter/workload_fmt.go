package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/coursetrack/internal/service"
)

// FormatWorkload renders what is left per course for one week.
func FormatWorkload(v *service.WorkloadView) string {
	var b strings.Builder
	label := fmt.Sprintf("Week %d", v.Week)
	if v.Current {
		label += " (this week)"
	}
	fmt.Fprintf(&b, "%s  %s\n", Bold(label), Dim("ends "+v.WeekEnd.Format("Mon Jan 2")))

	for _, c := range v.Courses {
		b.WriteString("\n")
		code := CourseCode(c.CourseCode, c.CourseColor)
		switch {
		case !c.HasWeek:
			fmt.Fprintf(&b, "%s %s  %s\n", code, c.CourseName, Dim("no classes this week"))
			continue
		case c.Complete():
			fmt.Fprintf(&b, "%s %s  %s\n", code, c.CourseName, StyleGreen.Render("✔ all done"))
			continue
		}
		fmt.Fprintf(&b, "%s %s  %s\n", code, c.CourseName,
			StyleYellow.Render(Plural(c.TotalRemaining(), "item")+" left"))
		for _, t := range c.PendingTasks {
			suffix := ""
			if t.Custom {
				suffix = StylePurple.Render(" (your task)")
			}
			fmt.Fprintf(&b, "  ☐ %s%s  %s\n", t.Text, suffix, Dim(t.ID))
		}
		for _, lo := range c.PendingLOs {
			fmt.Fprintf(&b, "  ◇ %s  %s\n", lo.Text, Dim(lo.ID))
		}
	}

	if v.Remaining() == 0 {
		b.WriteString("\n" + StyleGreen.Render("Nothing left this week.") + "\n")
	}
	return RenderBox("Workload", b.String())
}
