package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/planner"
	"github.com/charmbracelet/lipgloss"
)

const shareBarWidth = 12

// FormatPlan renders the complete process plan: batch summary, stage table,
// stage details, residue and warnings.
func FormatPlan(p planner.ProcessPlan) string {
	var b strings.Builder

	b.WriteString(formatBatchSummary(p))
	b.WriteString("\n\n")
	b.WriteString(FormatStageTable(p))
	b.WriteString("\n")
	b.WriteString(formatStageDetails(p))

	if len(p.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatWarnings(p.Warnings))
	}

	return RenderBox("Process plan", strings.TrimRight(b.String(), "\n"))
}

func formatBatchSummary(p planner.ProcessPlan) string {
	cfg := p.Config
	a := p.Analytics

	left := kvBlock([][2]string{
		{"POWER", fmt.Sprintf("%.2f kW", cfg.PowerKW)},
		{"BATCH", fmt.Sprintf("%.1f L @ %s", cfg.VolumeL, Percent(cfg.StrengthVol))},
		{"ALCOHOL", Ml(a.TotalAS)},
		{"BOILING", Celsius(a.BoilingTemp)},
	})
	right := kvBlock([][2]string{
		{"STABILIZE", Duration(cfg.StabilizationMin * 60)},
		{"TOTAL", StyleStrong.Render(Duration(p.TotalDurationSec))},
		{"COLLECTED", Ml(p.CollectedMl())},
		{"ONE CYCLE", fmt.Sprintf("%.0f s", a.OneCycleTime)},
	})
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
}

func kvBlock(pairs [][2]string) string {
	width := 0
	for _, kv := range pairs {
		if len(kv[0]) > width {
			width = len(kv[0])
		}
	}
	lines := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		label := kv[0] + strings.Repeat(" ", width-len(kv[0]))
		lines = append(lines, StyleMuted.Render(label)+"  "+StyleText.Render(kv[1]))
	}
	return strings.Join(lines, "\n")
}

// FormatStageTable renders one row per stage with volumes, flows, timers,
// valve duty and column ratios.
func FormatStageTable(p planner.ProcessPlan) string {
	headers := []string{"STAGE", "VOLUME", "FLOW", "DURATION", "DUTY", "REFLUX", "RETURN", "START", "SHARE"}
	align := []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft}

	collected := p.CollectedMl()
	rows := make([][]string, 0, 4)
	for _, s := range p.Stages() {
		if !s.Enabled {
			rows = append(rows, []string{StageLabel(s.Stage, false), Dim("--"), Dim("--"), Dim("--"), Dim("--"), Dim("--"), Dim("--"), Dim("--"), ""})
			continue
		}
		share := 0.0
		if collected > 0 {
			share = s.VolumeMl / collected
		}
		duty := p.Config.Controller.Duty(s.Stage)
		rows = append(rows, []string{
			StageLabel(s.Stage, true),
			Ml(s.VolumeMl),
			Flow(s.FlowMlh),
			Duration(s.DurationSec),
			fmt.Sprintf("%.1f/%.0f s", duty.Open(), duty.Period()),
			Reflux(s.RefluxRatio),
			Return(s.ReturnRatio),
			Celsius(s.StartTempC),
			RenderShare(share, shareBarWidth, StageStyle(s.Stage).Render),
		})
	}
	return RenderAlignedTable(headers, align, rows)
}

func formatStageDetails(p planner.ProcessPlan) string {
	var b strings.Builder

	if h := p.Heads; h.Enabled {
		b.WriteString(StageStyle(domain.StageHeads).Render("Heads") + Dim(" release ") +
			fmt.Sprintf("%s at %s", Ml(h.ReleaseMl), Flow(h.ReleaseFlowMlh)) +
			Dim(", main ") + Duration(h.MainDuration) +
			Dim(", final flow ") + Flow(h.FinalFlowMlh) + "\n")
	}

	if h := p.Hearts; h.Enabled {
		line := StageStyle(domain.StageHearts).Render("Hearts")
		if h.ByTemperature {
			line += Dim(" until ") + Celsius(h.EndTempC) +
				Dim(", collects ") + Percent(h.AchievedPercent) + Dim(" of alcohol")
		} else {
			line += Dim(" ends near ") + Celsius(h.EndTempC)
		}
		if h.Decaying {
			line += Dim(", flow ") + Flow(h.FlowMlh) + " → " + Flow(h.FinalFlowMlh) +
				Dim(" (avg ") + Flow(h.AvgFlowMlh) + Dim(")")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(Dim("Residue ") + Ml(p.Analytics.ResidueMl) + Dim(" at ") + Percent(p.Analytics.ResidualFortress) + "\n")
	return b.String()
}

// FormatWarnings renders one warning per line.
func FormatWarnings(warnings []string) string {
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, Warning(w))
	}
	return strings.Join(lines, "\n")
}
