package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/coursetrack/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// courseColors maps the catalog's course color keys onto the palette.
var courseColors = map[string]lipgloss.Color{
	"programming":   ColorBlue,
	"systems":       ColorPurple,
	"web":           ColorAqua,
	"math":          ColorYellow,
	"communication": ColorOrange,
	"ict":           ColorGreen,
}

// CourseStyle returns the accent style for a course color key.
func CourseStyle(key string) lipgloss.Style {
	if c, ok := courseColors[key]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return StyleBold
}

// CourseCode renders a course code in its accent color.
func CourseCode(code, colorKey string) string {
	return CourseStyle(colorKey).Render(code)
}

// DifficultyBadge renders a self-rating.
func DifficultyBadge(d domain.Difficulty) string {
	switch d {
	case domain.DifficultyEasy:
		return StyleGreen.Render("● easy")
	case domain.DifficultyMedium:
		return StyleYellow.Render("◐ medium")
	default:
		return StyleRed.Render("○ hard")
	}
}

// PercentStyle picks green, yellow or red for a 0-100 score.
func PercentStyle(pct int) lipgloss.Style {
	switch {
	case pct >= 66:
		return StyleGreen
	case pct >= 33:
		return StyleYellow
	default:
		return StyleRed
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
