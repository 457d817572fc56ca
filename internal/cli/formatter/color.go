package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Palette roles. Stage colours run warm to cool along the cut: heads red,
// late heads yellow, hearts green, tails purple.
var (
	ColorHeads     = lipgloss.Color("#fb4934")
	ColorLateHeads = lipgloss.Color("#fabd2f")
	ColorHearts    = lipgloss.Color("#8ec07c")
	ColorTails     = lipgloss.Color("#d3869b")
	ColorAccent    = lipgloss.Color("#fe8019")
	ColorMuted     = lipgloss.Color("#928374")
	ColorText      = lipgloss.Color("#ebdbb2")
)

var (
	StyleHeads     = lipgloss.NewStyle().Foreground(ColorHeads)
	StyleLateHeads = lipgloss.NewStyle().Foreground(ColorLateHeads)
	StyleHearts    = lipgloss.NewStyle().Foreground(ColorHearts)
	StyleTails     = lipgloss.NewStyle().Foreground(ColorTails)
	StyleAccent    = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StyleMuted     = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleText      = lipgloss.NewStyle().Foreground(ColorText)
	StyleStrong    = lipgloss.NewStyle().Foreground(ColorText).Bold(true)

	StyleOK    = StyleHearts
	StyleError = StyleHeads
)

func StageStyle(s domain.Stage) lipgloss.Style {
	switch s {
	case domain.StageHeads:
		return StyleHeads
	case domain.StageLateHeads:
		return StyleLateHeads
	case domain.StageHearts:
		return StyleHearts
	case domain.StageTails:
		return StyleTails
	default:
		return StyleMuted
	}
}

// StageLabel renders the stage label in its color, dimmed when disabled.
func StageLabel(s domain.Stage, enabled bool) string {
	if !enabled {
		return StyleMuted.Render(s.Label() + " (off)")
	}
	return StageStyle(s).Render(s.Label())
}

// ActivePill marks the active profile.
func ActivePill(active bool) string {
	if active {
		return StyleOK.Render("● Active")
	}
	return StyleMuted.Render("○")
}

// Header renders an upper-cased section title underlined to its width.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleAccent.Render(upper), StyleMuted.Render(line))
}

func Dim(text string) string {
	return StyleMuted.Render(text)
}

func Bold(text string) string {
	return StyleStrong.Render(text)
}

// Warning renders a single warning line.
func Warning(text string) string {
	return StyleLateHeads.Render("▲ " + text)
}
