package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		offset time.Duration
		want   string
	}{
		{0, "Today"},
		{24 * time.Hour, "Tomorrow"},
		{-24 * time.Hour, "Yesterday"},
		{5 * 24 * time.Hour, "In 5d"},
		{21 * 24 * time.Hour, "In 3w"},
		{90 * 24 * time.Hour, "In 3mo"},
		{-3 * 24 * time.Hour, "3d ago"},
		{-28 * 24 * time.Hour, "4w ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeDateFrom(now.Add(tt.offset), now))
	}
}

func TestDaysLeft(t *testing.T) {
	assert.Equal(t, "DUE TODAY", stripANSI(DaysLeft(0)))
	assert.Equal(t, "DUE TODAY", stripANSI(DaysLeft(-2)))
	assert.Equal(t, "1 day", stripANSI(DaysLeft(1)))
	assert.Equal(t, "12 days", stripANSI(DaysLeft(12)))
}

func TestSavedAt(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "just now", SavedAt("2026-03-02T11:59:30.000Z", now))
	assert.Equal(t, "5m ago", SavedAt("2026-03-02T11:55:00.000Z", now))
	assert.Equal(t, "3h ago", SavedAt("2026-03-02T09:00:00.000Z", now))
	assert.Equal(t, "Feb 20 08:00", SavedAt("2026-02-20T08:00:00.000Z", now))
	assert.Equal(t, "never", stripANSI(SavedAt("", now)))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 task", Plural(1, "task"))
	assert.Equal(t, "0 tasks", Plural(0, "task"))
	assert.Equal(t, "4 items", Plural(4, "item"))
}

func TestRenderPercent(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50%", stripANSI(RenderPercent(50, 10)))
	assert.Equal(t, "[░░░░░░░░░░]   0%", stripANSI(RenderPercent(0, 10)))
	assert.Equal(t, "[██████████] 100%", stripANSI(RenderPercent(100, 10)))
}

func TestRenderProgress_Clamps(t *testing.T) {
	assert.Equal(t, "[████] 100%", stripANSI(RenderProgress(1.5, 4)))
	assert.Equal(t, "[░░]   0%", stripANSI(RenderProgress(-1, 1)))
}

func TestRenderCompactBar(t *testing.T) {
	got := stripANSI(RenderCompactBar(0.5, 4, true))
	assert.Equal(t, "██░░", got)
	assert.NotContains(t, RenderCompactBar(0.5, 4, false), "%")
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "BB"},
		[][]string{{StyleRed.Render("xyz"), "1"}, {"q"}},
	))

	assert.Equal(t, "A    BB\n───  ──\nxyz  1\nq    \n", out)
	assert.Empty(t, RenderTable(nil, nil))
}

func TestCourseStyle_UnknownKeyFallsBack(t *testing.T) {
	assert.Equal(t, "X", stripANSI(CourseCode("X", "unknown")))
	assert.Equal(t, "PROG", stripANSI(CourseCode("PROG", "programming")))
}
