package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/coursetrack/internal/service"
)

// FormatWeek renders one week with its tasks, outcomes and note. Ids are
// printed so they can be passed back to task and lo commands.
func FormatWeek(w *service.WeekView) string {
	var b strings.Builder

	title := fmt.Sprintf("Week %d: %s", w.Week.Number, w.Week.Title)
	if w.Current {
		title += "  " + StyleHeader.Render("(this week)")
	}
	b.WriteString(Bold(title) + "\n")
	b.WriteString(Dim(w.Week.DateRange) + "\n")
	if w.Week.Description != "" {
		b.WriteString(w.Week.Description + "\n")
	}
	b.WriteString("\n" + RenderPercent(w.Score.Percent, 20) + "\n")

	b.WriteString("\n" + Header("Tasks") + "\n")
	if len(w.Tasks) == 0 {
		b.WriteString(Dim("  no tasks") + "\n")
	}
	for _, t := range w.Tasks {
		box, text := "☐", t.Text
		if t.Done {
			box, text = StyleGreen.Render("☑"), Dim(t.Text)
		}
		if t.Custom {
			text += StylePurple.Render(" (your task)")
		}
		fmt.Fprintf(&b, "  %s %s  %s\n", box, text, Dim(t.ID))
	}

	b.WriteString("\n" + Header("Learning outcomes") + "\n")
	if len(w.Outcomes) == 0 {
		b.WriteString(Dim("  none") + "\n")
	}
	for _, o := range w.Outcomes {
		fmt.Fprintf(&b, "  %s  %s  %s\n", DifficultyBadge(o.Level), o.Text, Dim(o.ID))
		if n := len(o.History); n > 1 {
			b.WriteString(Dim(fmt.Sprintf("      rated %d times, last %s", n, o.History[n-1])) + "\n")
		}
	}

	if w.HasNote {
		b.WriteString("\n" + Header("Note") + "\n")
		if w.Note == "" {
			b.WriteString(Dim("  (empty)") + "\n")
		} else {
			b.WriteString(w.Note + "\n")
		}
	}

	return RenderBox(w.Week.ID, b.String())
}
