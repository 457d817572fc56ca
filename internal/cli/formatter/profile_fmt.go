package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatProfileList renders saved profiles inside a bordered box.
func FormatProfileList(profiles []*domain.Profile) string {
	if len(profiles) == 0 {
		return RenderBox("Profiles", Dim("No profiles yet. Create one with: rectplan profile create --name NAME"))
	}

	headers := []string{"ID", "NAME", "BATCH", "POWER", "APPLIED", ""}
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		applied := Dim("never")
		if p.AppliedAt != nil {
			applied = HumanTimestamp(*p.AppliedAt)
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			fmt.Sprintf("%.1f L @ %.1f %%", p.Config.VolumeL, p.Config.StrengthVol),
			fmt.Sprintf("%.2f kW", p.Config.PowerKW),
			applied,
			ActivePill(p.IsActive),
		})
	}
	return RenderBox("Profiles", RenderTable(headers, rows))
}

// FormatProfile renders one profile with its full configuration.
func FormatProfile(p *domain.Profile) string {
	var b strings.Builder

	b.WriteString(StyleStrong.Render(p.Name))
	if p.IsActive {
		b.WriteString("  " + ActivePill(true))
	}
	b.WriteString("\n")
	b.WriteString(Dim(p.ID) + "\n")
	if p.Notes != "" {
		b.WriteString(StyleText.Render(p.Notes) + "\n")
	}
	b.WriteString(Dim("created ") + HumanDate(p.CreatedAt))
	if p.AppliedAt != nil {
		b.WriteString(Dim("  applied ") + HumanDate(*p.AppliedAt))
	}
	b.WriteString("\n\n")
	b.WriteString(FormatConfig(p.Config))

	return RenderBox("Profile", b.String())
}

// FormatConfig renders the inputs of a planning run: batch, cuts and the
// controller settings side by side.
func FormatConfig(cfg domain.ProcessConfig) string {
	batch := kvBlock([][2]string{
		{"POWER", fmt.Sprintf("%.2f kW", cfg.PowerKW)},
		{"VOLUME", fmt.Sprintf("%.1f L", cfg.VolumeL)},
		{"STRENGTH", Percent(cfg.StrengthVol)},
		{"STABILIZE", fmt.Sprintf("%.0f min", cfg.StabilizationMin)},
	})

	headers := []string{"CUT", "%", "TARGET"}
	align := []Align{AlignLeft, AlignRight, AlignRight}
	rows := make([][]string, 0, len(domain.Stages))
	for _, s := range domain.Stages {
		sc := cfg.Stage(s)
		target := Flow(sc.TargetFlowMlh)
		if s == domain.StageHeads {
			target = fmt.Sprintf("%.0f cycles", sc.TargetCycles)
		}
		enabled := sc.Enabled || s == domain.StageHeads || s == domain.StageHearts
		rows = append(rows, []string{StageLabel(s, enabled), fmt.Sprintf("%.1f", sc.Percent), target})
	}
	cuts := RenderAlignedTable(headers, align, rows)

	ctl := cfg.Controller
	controller := kvBlock([][2]string{
		{"VALVES", fmt.Sprintf("%.0f / %.0f / %.0f mL/h", ctl.ValveBW[0], ctl.ValveBW[1], ctl.ValveBW[2])},
		{"FINISH", finishTemp(ctl)},
		{"DECAY", decay(ctl)},
		{"HYSTERESIS", fmt.Sprintf("%.2f °C", ctl.Hysteresis)},
	})

	top := lipgloss.JoinHorizontal(lipgloss.Top, batch, "    ", controller)
	return top + "\n\n" + strings.TrimRight(cuts, "\n")
}

func finishTemp(ctl domain.ControllerSettings) string {
	if ctl.HeartsFinishTemp <= 0 {
		return Dim("by percent")
	}
	return Celsius(ctl.HeartsFinishTemp)
}

func decay(ctl domain.ControllerSettings) string {
	if !ctl.Formula || ctl.DecrementPct <= 0 {
		return Dim("off")
	}
	return Percent(ctl.DecrementPct)
}

// FormatHistory renders applied plan runs, newest first.
func FormatHistory(profileName string, runs []*domain.PlanRun) string {
	title := "History: " + profileName
	if len(runs) == 0 {
		return RenderBox(title, Dim("Plan has not been applied yet."))
	}
	headers := []string{"RUN", "APPLIED", "TOTAL", "HEARTS"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignRight}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			TruncID(r.ID),
			r.CreatedAt.Local().Format(time.DateTime),
			Duration(r.TotalDurationSec),
			Ml(r.HeartsMl),
		})
	}
	return RenderBox(title, RenderAlignedTable(headers, align, rows))
}
