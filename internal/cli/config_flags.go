package cli

import (
	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/spf13/pflag"
)

type floatFlag struct {
	name  string
	usage string
	field func(*domain.ProcessConfig) *float64
}

type boolFlag struct {
	name  string
	usage string
	field func(*domain.ProcessConfig) *bool
}

var floatFlags = []floatFlag{
	{"power", "heater power (kW)", func(c *domain.ProcessConfig) *float64 { return &c.PowerKW }},
	{"volume", "batch volume (L)", func(c *domain.ProcessConfig) *float64 { return &c.VolumeL }},
	{"strength", "batch strength (% ABV)", func(c *domain.ProcessConfig) *float64 { return &c.StrengthVol }},
	{"stabilization", "column stabilization (min)", func(c *domain.ProcessConfig) *float64 { return &c.StabilizationMin }},
	{"heads-percent", "heads share of absolute alcohol (%)", func(c *domain.ProcessConfig) *float64 { return &c.Heads.Percent }},
	{"heads-cycles", "heads valve cycles per minute target", func(c *domain.ProcessConfig) *float64 { return &c.Heads.TargetCycles }},
	{"late-heads-percent", "late heads share of absolute alcohol (%)", func(c *domain.ProcessConfig) *float64 { return &c.LateHeads.Percent }},
	{"late-heads-flow", "late heads draw (mL/h)", func(c *domain.ProcessConfig) *float64 { return &c.LateHeads.TargetFlowMlh }},
	{"hearts-percent", "hearts share of absolute alcohol (%)", func(c *domain.ProcessConfig) *float64 { return &c.Hearts.Percent }},
	{"hearts-flow", "hearts draw (mL/h)", func(c *domain.ProcessConfig) *float64 { return &c.Hearts.TargetFlowMlh }},
	{"tails-percent", "tails share of absolute alcohol (%)", func(c *domain.ProcessConfig) *float64 { return &c.Tails.Percent }},
	{"tails-flow", "tails draw (mL/h)", func(c *domain.ProcessConfig) *float64 { return &c.Tails.TargetFlowMlh }},
	{"valve-heads", "heads valve capacity (mL/h)", func(c *domain.ProcessConfig) *float64 { return &c.Controller.ValveBW[0] }},
	{"valve-body", "hearts valve capacity (mL/h)", func(c *domain.ProcessConfig) *float64 { return &c.Controller.ValveBW[1] }},
	{"valve-tails", "third valve capacity (mL/h)", func(c *domain.ProcessConfig) *float64 { return &c.Controller.ValveBW[2] }},
	{"finish-temp", "end hearts at this column temperature (°C, 0 = by percent)", func(c *domain.ProcessConfig) *float64 { return &c.Controller.HeartsFinishTemp }},
	{"decrement", "hearts flow decay per step (%)", func(c *domain.ProcessConfig) *float64 { return &c.Controller.DecrementPct }},
	{"hyst", "hearts temperature hysteresis (°C)", func(c *domain.ProcessConfig) *float64 { return &c.Controller.Hysteresis }},
}

var boolFlags = []boolFlag{
	{"late-heads", "collect late heads", func(c *domain.ProcessConfig) *bool { return &c.LateHeads.Enabled }},
	{"tails", "collect tails", func(c *domain.ProcessConfig) *bool { return &c.Tails.Enabled }},
	{"decay", "decay the hearts draw as strength falls", func(c *domain.ProcessConfig) *bool { return &c.Controller.Formula }},
}

// addConfigFlags registers one flag per process input. Defaults are shown
// from domain.DefaultConfig; only flags the user sets are applied.
func addConfigFlags(fs *pflag.FlagSet) {
	def := domain.DefaultConfig()
	for _, f := range floatFlags {
		fs.Float64(f.name, *f.field(&def), f.usage)
	}
	for _, f := range boolFlags {
		fs.Bool(f.name, *f.field(&def), f.usage)
	}
}

// applyConfigFlags copies every changed config flag into cfg and reports
// whether any was set.
func applyConfigFlags(fs *pflag.FlagSet, cfg *domain.ProcessConfig) (bool, error) {
	changed := false
	for _, f := range floatFlags {
		if !fs.Changed(f.name) {
			continue
		}
		v, err := fs.GetFloat64(f.name)
		if err != nil {
			return changed, err
		}
		*f.field(cfg) = v
		changed = true
	}
	for _, f := range boolFlags {
		if !fs.Changed(f.name) {
			continue
		}
		v, err := fs.GetBool(f.name)
		if err != nil {
			return changed, err
		}
		*f.field(cfg) = v
		changed = true
	}
	return changed, nil
}
