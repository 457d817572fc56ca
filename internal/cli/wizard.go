package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/rectplan/internal/cli/formatter"
	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/importer"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// rectplanHuhTheme returns a huh theme using the formatter palette.
func rectplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorAccent).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorHearts)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorText)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorText).Background(formatter.ColorAccent).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorMuted).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorText)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorMuted)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorMuted)

	return t
}

// profileWizardFields holds form-bound values for the create wizard.
type profileWizardFields struct {
	name     string
	notes    string
	power    string
	volume   string
	strength string

	headsPct     string
	lateHeads    bool
	lateHeadsPct string
	heartsPct    string
	heartsFlow   string
	tails        bool
	finishTemp   string
}

func newProfileWizardFields(name string) *profileWizardFields {
	def := domain.DefaultConfig()
	return &profileWizardFields{
		name:         name,
		power:        formatFloat(def.PowerKW),
		volume:       formatFloat(def.VolumeL),
		strength:     formatFloat(def.StrengthVol),
		headsPct:     formatFloat(def.Heads.Percent),
		lateHeads:    def.LateHeads.Enabled,
		lateHeadsPct: formatFloat(def.LateHeads.Percent),
		heartsPct:    formatFloat(def.Hearts.Percent),
		heartsFlow:   formatFloat(def.Hearts.TargetFlowMlh),
		tails:        def.Tails.Enabled,
		finishTemp:   "0",
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// newProfileWizard builds the create form over f.
func newProfileWizard(f *profileWizardFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile name").
				Value(&f.name).
				Validate(validateProfileName),
			huh.NewInput().
				Title("Notes (optional)").
				Value(&f.notes),
		),
		huh.NewGroup(
			huh.NewInput().Title("Heater power (kW)").Value(&f.power).Validate(validateNonNegativeFloat),
			huh.NewInput().Title("Batch volume (L)").Value(&f.volume).Validate(validateNonNegativeFloat),
			huh.NewInput().Title("Batch strength (% ABV)").Value(&f.strength).Validate(validatePercent),
		),
		huh.NewGroup(
			huh.NewInput().Title("Heads (% of alcohol)").Value(&f.headsPct).Validate(validatePercent),
			huh.NewConfirm().Title("Collect late heads?").Value(&f.lateHeads),
			huh.NewInput().Title("Late heads (% of alcohol)").Value(&f.lateHeadsPct).Validate(validatePercent),
			huh.NewInput().Title("Hearts (% of alcohol)").Value(&f.heartsPct).Validate(validatePercent),
			huh.NewInput().Title("Hearts draw (mL/h)").Value(&f.heartsFlow).Validate(validateNonNegativeFloat),
			huh.NewInput().
				Title("Finish hearts at (°C)").
				Description("0 ends hearts by percent instead").
				Value(&f.finishTemp).
				Validate(validateNonNegativeFloat),
			huh.NewConfirm().Title("Collect tails?").Value(&f.tails),
		),
	).WithTheme(rectplanHuhTheme()).WithShowHelp(false)
}

func runProfileWizard(f *profileWizardFields) error {
	return newProfileWizard(f).Run()
}

// toProfile converts the wizard answers into an unsaved profile over the
// defaults.
func (f *profileWizardFields) toProfile() (*domain.Profile, error) {
	cfg := domain.DefaultConfig()
	targets := []struct {
		label string
		value string
		dst   *float64
	}{
		{"power", f.power, &cfg.PowerKW},
		{"volume", f.volume, &cfg.VolumeL},
		{"strength", f.strength, &cfg.StrengthVol},
		{"heads percent", f.headsPct, &cfg.Heads.Percent},
		{"late heads percent", f.lateHeadsPct, &cfg.LateHeads.Percent},
		{"hearts percent", f.heartsPct, &cfg.Hearts.Percent},
		{"hearts flow", f.heartsFlow, &cfg.Hearts.TargetFlowMlh},
		{"finish temperature", f.finishTemp, &cfg.Controller.HeartsFinishTemp},
	}
	for _, t := range targets {
		if strings.TrimSpace(t.value) == "" {
			continue
		}
		v, err := parseFloat(t.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.label, err)
		}
		*t.dst = v
	}
	cfg.LateHeads.Enabled = f.lateHeads
	cfg.Tails.Enabled = f.tails

	return &domain.Profile{
		Name:   strings.TrimSpace(f.name),
		Notes:  strings.TrimSpace(f.notes),
		Config: cfg,
	}, nil
}

// parseFloat accepts a decimal comma as well as a point.
func parseFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func validateProfileName(s string) error {
	if errs := importer.ValidateName(strings.TrimSpace(s)); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func validateNonNegativeFloat(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := parseFloat(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validatePercent(s string) error {
	if err := validateNonNegativeFloat(s); err != nil || strings.TrimSpace(s) == "" {
		return err
	}
	v, _ := parseFloat(s)
	if v > 100 {
		return fmt.Errorf("must be at most 100")
	}
	return nil
}
