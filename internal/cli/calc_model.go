package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/rectplan/internal/cli/formatter"
	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/planner"
	"github.com/alexanderramin/rectplan/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// calcField is one editable input of the calculator.
type calcField struct {
	label string
	unit  string
	field func(*domain.ProcessConfig) *float64
	input textinput.Model
}

var calcFieldDefs = []struct {
	label string
	unit  string
	field func(*domain.ProcessConfig) *float64
}{
	{"Power", "kW", func(c *domain.ProcessConfig) *float64 { return &c.PowerKW }},
	{"Volume", "L", func(c *domain.ProcessConfig) *float64 { return &c.VolumeL }},
	{"Strength", "%", func(c *domain.ProcessConfig) *float64 { return &c.StrengthVol }},
	{"Heads", "%", func(c *domain.ProcessConfig) *float64 { return &c.Heads.Percent }},
	{"Late heads", "%", func(c *domain.ProcessConfig) *float64 { return &c.LateHeads.Percent }},
	{"Late heads draw", "mL/h", func(c *domain.ProcessConfig) *float64 { return &c.LateHeads.TargetFlowMlh }},
	{"Hearts", "%", func(c *domain.ProcessConfig) *float64 { return &c.Hearts.Percent }},
	{"Hearts draw", "mL/h", func(c *domain.ProcessConfig) *float64 { return &c.Hearts.TargetFlowMlh }},
	{"Tails", "%", func(c *domain.ProcessConfig) *float64 { return &c.Tails.Percent }},
	{"Tails draw", "mL/h", func(c *domain.ProcessConfig) *float64 { return &c.Tails.TargetFlowMlh }},
	{"Finish temp", "°C", func(c *domain.ProcessConfig) *float64 { return &c.Controller.HeartsFinishTemp }},
}

type calcKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Done key.Binding
	Quit key.Binding
}

func defaultCalcKeyMap() calcKeyMap {
	return calcKeyMap{
		Next: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev")),
		Done: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// calcModel recomputes the plan on every keystroke. Late heads and tails
// are collected whenever their percent is positive.
type calcModel struct {
	ctx   context.Context
	plans service.PlanService
	base  domain.ProcessConfig

	fields []calcField
	focus  int
	keys   calcKeyMap
	width  int

	cfg  domain.ProcessConfig
	plan *planner.ProcessPlan
	err  error

	confirmed bool
	quitting  bool
}

func newCalcModel(ctx context.Context, plans service.PlanService, base domain.ProcessConfig) *calcModel {
	base = domain.Normalize(base)
	m := &calcModel{
		ctx:   ctx,
		plans: plans,
		base:  base,
		keys:  defaultCalcKeyMap(),
	}
	for _, def := range calcFieldDefs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 12
		ti.Width = 10
		ti.SetValue(formatFloat(*def.field(&base)))
		ti.CursorEnd()
		m.fields = append(m.fields, calcField{label: def.label, unit: def.unit, field: def.field, input: ti})
	}
	m.fields[0].input.Focus()
	m.recompute()
	return m
}

func (m *calcModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *calcModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Done):
			if m.err != nil {
				return m, nil
			}
			m.confirmed = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus(m.focus - 1)
		}
	}

	var cmd tea.Cmd
	before := m.fields[m.focus].input.Value()
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	if m.fields[m.focus].input.Value() != before {
		m.recompute()
	}
	return m, cmd
}

func (m *calcModel) setFocus(i int) tea.Cmd {
	n := len(m.fields)
	i = ((i % n) + n) % n
	m.fields[m.focus].input.Blur()
	m.focus = i
	return m.fields[i].input.Focus()
}

// recompute parses every input over the base config and plans it. A parse
// or validation error keeps the last good plan on screen.
func (m *calcModel) recompute() {
	cfg := m.base
	for _, f := range m.fields {
		raw := strings.TrimSpace(f.input.Value())
		if raw == "" {
			*f.field(&cfg) = 0
			continue
		}
		v, err := parseFloat(raw)
		if err != nil {
			m.err = fmt.Errorf("%s: %w", f.label, err)
			return
		}
		*f.field(&cfg) = v
	}
	cfg.LateHeads.Enabled = cfg.LateHeads.Percent > 0
	cfg.Tails.Enabled = cfg.Tails.Percent > 0

	plan, err := m.plans.Calculate(m.ctx, cfg)
	if err != nil {
		m.err = err
		return
	}
	m.cfg = cfg
	m.plan = &plan
	m.err = nil
}

// Config returns the last config that planned without error.
func (m *calcModel) Config() domain.ProcessConfig {
	return m.cfg
}

func (m *calcModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Calculator"))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, f := range m.fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.label))
	}
	for i, f := range m.fields {
		label := f.label + strings.Repeat(" ", labelWidth-lipgloss.Width(f.label))
		marker := "  "
		if i == m.focus {
			marker = formatter.StyleAccent.Render("› ")
			label = formatter.StyleStrong.Render(label)
		} else {
			label = formatter.Dim(label)
		}
		b.WriteString(fmt.Sprintf("%s%s  %s %s\n", marker, label, f.input.View(), formatter.Dim(f.unit)))
	}
	b.WriteString("\n")

	if m.plan != nil {
		b.WriteString(formatter.FormatStageTable(*m.plan))
		b.WriteString("\n")
		b.WriteString(formatter.Dim("Total ") + formatter.Bold(formatter.Duration(m.plan.TotalDurationSec)) +
			formatter.Dim("   Residue ") + formatter.Ml(m.plan.Analytics.ResidueMl) + "\n")
		if len(m.plan.Warnings) > 0 {
			b.WriteString(formatter.FormatWarnings(m.plan.Warnings) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString(formatter.StyleError.Render("✖ "+firstLine(m.err.Error())) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(formatter.Dim(m.helpLine()))
	return b.String()
}

func (m *calcModel) helpLine() string {
	bindings := []key.Binding{m.keys.Next, m.keys.Prev, m.keys.Done, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
