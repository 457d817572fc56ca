package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/rectplan/internal/physics"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleAccent.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// Duration formats seconds as HH:MM:SS. Hours are not wrapped at 24.
// Negative and non-finite inputs render as 00:00:00.
func Duration(sec float64) string {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec <= 0 {
		return "00:00:00"
	}
	total := int64(math.Floor(sec + 0.5))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Reflux renders a reflux ratio, showing the closed-valve sentinel as ∞.
func Reflux(r float64) string {
	if r >= physics.RefluxClosed {
		return "∞"
	}
	return fmt.Sprintf("%.2f", r)
}

// Return renders a return (phlegm) ratio, showing the closed-valve
// sentinel as N/A.
func Return(r float64) string {
	if r >= physics.ReturnClosed {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", r)
}

// Ml renders a volume with a unit suffix, switching to litres at 10 L.
func Ml(v float64) string {
	if math.Abs(v) >= 10000 {
		return fmt.Sprintf("%.2f L", v/1000)
	}
	return fmt.Sprintf("%.0f mL", v)
}

// Flow renders a flow rate in mL/h.
func Flow(v float64) string {
	return fmt.Sprintf("%.0f mL/h", v)
}

// Percent renders a percentage with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f %%", v)
}

// Celsius renders a temperature with two decimals.
func Celsius(v float64) string {
	return fmt.Sprintf("%.2f °C", v)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	return HumanDateFrom(t, time.Now())
}

// HumanDateFrom is HumanDate against a fixed reference time.
func HumanDateFrom(t, now time.Time) string {
	t = t.In(now.Location())
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today " + t.Format("15:04")
	}
	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday " + t.Format("15:04")
	}
	return t.Format("Jan 2, 2006 15:04")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

// HumanTimestampFrom is HumanTimestamp against a fixed reference time.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return HumanDateFrom(t, now)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDateFrom(t, now)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleMuted.Render(id)
}
