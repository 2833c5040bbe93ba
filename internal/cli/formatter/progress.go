package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampFraction(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

func bar(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

// RenderProgress renders a bar like [████░░░░]  45% for a 0-1 fraction.
func RenderProgress(pct float64, width int) string {
	pct = clampFraction(pct)
	style := PercentStyle(int(pct * 100))
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar(pct, width)), pct*100)
}

// RenderPercent renders a bar for an already-rounded 0-100 score so the
// label matches the stored percentage exactly.
func RenderPercent(pct int, width int) string {
	frac := clampFraction(float64(pct) / 100)
	return fmt.Sprintf("[%s] %3d%%", PercentStyle(pct).Render(bar(frac, width)), pct)
}

// RenderCompactBar renders a bare bar without brackets or label.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct = clampFraction(pct)
	if dim {
		return StyleDim.Render(bar(pct, width))
	}
	return PercentStyle(int(pct * 100)).Render(bar(pct, width))
}
