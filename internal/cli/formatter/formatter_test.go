package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/physics"
	"github.com/alexanderramin/rectplan/internal/planner"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences so assertions are
// terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		sec  float64
		want string
	}{
		{"zero", 0, "00:00:00"},
		{"negative", -5, "00:00:00"},
		{"seconds", 59, "00:00:59"},
		{"rounds half up", 59.5, "00:01:00"},
		{"hours", 12096, "03:21:36"},
		{"past a day", 90061, "25:01:01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Duration(tt.sec))
		})
	}
}

func TestSentinels(t *testing.T) {
	assert.Equal(t, "∞", Reflux(physics.RefluxClosed))
	assert.Equal(t, "3.25", Reflux(3.25))
	assert.Equal(t, "N/A", Return(physics.ReturnClosed))
	assert.Equal(t, "0.40", Return(0.4))
}

func TestUnits(t *testing.T) {
	assert.Equal(t, "216 mL", Ml(216))
	assert.Equal(t, "18.00 L", Ml(18000))
	assert.Equal(t, "2500 mL/h", Flow(2500))
	assert.Equal(t, "40.0 %", Percent(40))
	assert.Equal(t, "78.15 °C", Celsius(78.149))
}

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", HumanTimestampFrom(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", HumanTimestampFrom(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", HumanTimestampFrom(now.Add(-3*time.Hour), now))
	assert.Equal(t, "Feb 1, 2026 12:00", HumanTimestampFrom(now.AddDate(0, 0, -6), now))
}

func TestRenderShare(t *testing.T) {
	assert.Equal(t, "[██░░]  50%", RenderShare(0.5, 4, nil))
	assert.Equal(t, "[████] 100%", RenderShare(3, 4, nil), "share is capped at one")
	assert.Equal(t, "[░░░░]   0%", RenderShare(-1, 4, nil))
}

func TestRenderAlignedTable(t *testing.T) {
	out := stripANSI(RenderAlignedTable(
		[]string{"NAME", "ML"},
		[]Align{AlignLeft, AlignRight},
		[][]string{{"heads", "216"}, {"hearts", "5625"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "NAME      ML", lines[0])
	assert.Equal(t, "heads    216", lines[2])
	assert.Equal(t, "hearts  5625", lines[3])
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestFormatPlan_DefaultProfile(t *testing.T) {
	plan := planner.Plan(domain.DefaultConfig())
	out := stripANSI(FormatPlan(plan))

	assert.Contains(t, out, "PROCESS PLAN")
	assert.Contains(t, out, "Heads")
	assert.Contains(t, out, "Late heads")
	assert.Contains(t, out, "Hearts")
	assert.Contains(t, out, "Tails (off)")
	assert.Contains(t, out, "216 mL")
	assert.Contains(t, out, "5625 mL")
	assert.Contains(t, out, "03:21:36", "late heads duration")
	assert.Contains(t, out, Duration(plan.TotalDurationSec))
	assert.NotContains(t, out, "▲", "default profile has no warnings")
}

func TestFormatPlan_ShowsWarnings(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.PowerKW = 0
	out := stripANSI(FormatPlan(planner.Plan(cfg)))

	assert.Contains(t, out, "heater power is zero")
	assert.Contains(t, out, "00:00:00", "no total without power")
}

func TestFormatProfileList(t *testing.T) {
	applied := time.Now().Add(-2 * time.Hour)
	profiles := []*domain.Profile{
		{ID: "0123456789abcdef", Name: "Sugar wash", Config: domain.DefaultConfig(), IsActive: true, AppliedAt: &applied},
		{ID: "fedcba9876543210", Name: "Grain", Config: domain.DefaultConfig()},
	}
	out := stripANSI(FormatProfileList(profiles))

	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789", "IDs are truncated")
	assert.Contains(t, out, "Sugar wash")
	assert.Contains(t, out, "● Active")
	assert.Contains(t, out, "2h ago")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "18.0 L @ 40.0 %")
}

func TestFormatProfileList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatProfileList(nil)), "No profiles yet")
}

func TestFormatProfile(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Controller.HeartsFinishTemp = 92.5
	p := &domain.Profile{ID: "abc", Name: "Rum", Notes: "molasses", Config: cfg, CreatedAt: time.Now()}
	out := stripANSI(FormatProfile(p))

	assert.Contains(t, out, "Rum")
	assert.Contains(t, out, "molasses")
	assert.Contains(t, out, "92.50 °C")
	assert.Contains(t, out, "7000 / 12000 / 7000 mL/h")
	assert.Contains(t, out, "2 cycles")
}

func TestFormatHistory(t *testing.T) {
	runs := []*domain.PlanRun{
		{ID: "run-00001-abc", TotalDurationSec: 3661, HeartsMl: 5625, CreatedAt: time.Now()},
	}
	out := stripANSI(FormatHistory("Rum", runs))
	assert.Contains(t, out, "HISTORY: RUM")
	assert.Contains(t, out, "01:01:01")
	assert.Contains(t, out, "5625 mL")

	assert.Contains(t, stripANSI(FormatHistory("Rum", nil)), "not been applied")
}
