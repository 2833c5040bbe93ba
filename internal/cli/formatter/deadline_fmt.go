package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/coursetrack/internal/deadline"
)

// FormatDeadlines renders the critical-item list.
func FormatDeadlines(items []deadline.CriticalItem) string {
	if len(items) == 0 {
		return RenderBox("Deadlines", Dim("No upcoming exams or summative assessments."))
	}
	missing := 0
	for _, it := range items {
		if it.MissingDate() {
			missing++
		}
	}
	var b strings.Builder
	b.WriteString(deadlineRows(items))
	if missing > 0 {
		b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf("%s without a usable date.", Plural(missing, "assessment"))) + "\n")
		b.WriteString(Dim("Set one with: coursetrack assessment date <id> YYYY-MM-DD") + "\n")
	}
	return RenderBox("Deadlines", b.String())
}

func deadlineRows(items []deadline.CriticalItem) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		date, left := Dim("set a date"), ""
		switch {
		case it.InvalidDate():
			date = StyleRed.Render(it.DisplayDate + " ?")
		case it.Date != nil:
			date = it.Date.Format("Mon Jan 2 2006")
			left = DaysLeft(*it.DaysUntil)
		}
		kind := Dim("summative")
		if it.Assessment.IsExam {
			kind = StyleRed.Render("exam")
		}
		rows = append(rows, []string{
			CourseCode(it.CourseCode, it.CourseColor),
			it.Assessment.Name,
			kind,
			date,
			left,
			Dim(it.Assessment.ID),
		})
	}
	return RenderTable([]string{"CODE", "ASSESSMENT", "KIND", "DATE", "LEFT", "ID"}, rows)
}
