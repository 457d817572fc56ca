package formatter

import (
	"fmt"
	"math"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderShare renders a stage's share of the collected product, like
// [████░░░░]  45%, in the given stage style's color.
func RenderShare(share float64, width int, render func(...string) string) string {
	if share < 0 || math.IsNaN(share) {
		share = 0
	}
	if share > 1 {
		share = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(share*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	if render != nil {
		bar = render(bar)
	}
	return fmt.Sprintf("[%s] %3.0f%%", bar, share*100)
}
