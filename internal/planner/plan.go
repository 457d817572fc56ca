package planner

import (
	"fmt"
	"math"

	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/physics"
)

// ProcessPlan is the complete schedule for one batch.
type ProcessPlan struct {
	// Config echoes the input with derived duty tuples, timers and, in
	// temperature mode, the achieved hearts percent written back.
	Config    domain.ProcessConfig `json:"config"`
	Heads     HeadsPlan            `json:"heads"`
	LateHeads StagePlan            `json:"late_heads"`
	Hearts    HeartsPlan           `json:"hearts"`
	Tails     StagePlan            `json:"tails"`

	Initial          BatchState `json:"initial"`
	Residual         BatchState `json:"residual"`
	TotalDurationSec float64    `json:"total_duration_sec"`
	Analytics        Analytics  `json:"analytics"`
	Warnings         []string   `json:"warnings,omitempty"`
}

// Stages returns the four stage plans in collection order.
func (p ProcessPlan) Stages() []StagePlan {
	return []StagePlan{p.Heads.StagePlan, p.LateHeads, p.Hearts.StagePlan, p.Tails}
}

// CollectedMl is the total product volume of all enabled stages.
func (p ProcessPlan) CollectedMl() float64 {
	var total float64
	for _, s := range p.Stages() {
		total += s.VolumeMl
	}
	return total
}

// Plan runs the four stages in order against a fresh batch. It never fails;
// callers validate cfg beforehand.
func Plan(cfg domain.ProcessConfig) ProcessPlan {
	initial := NewBatchState(cfg.VolumeL, cfg.StrengthVol)

	heads, st := PlanHeads(cfg, initial, initial)
	lateHeads, st := PlanLateHeads(cfg, initial, st)
	hearts, st := PlanHearts(cfg, initial, st)
	tails, st := PlanTails(cfg, initial, st)

	plan := ProcessPlan{
		Heads:     heads,
		LateHeads: lateHeads,
		Hearts:    hearts,
		Tails:     tails,
		Initial:   initial,
		Residual:  st,
	}
	if cfg.PowerKW > 0 {
		plan.TotalDurationSec = cfg.StabilizationMin*60 +
			heads.DurationSec + lateHeads.DurationSec + hearts.DurationSec + tails.DurationSec
	}
	plan.Config = echoConfig(cfg, plan)
	plan.Analytics = buildAnalytics(cfg, plan)
	plan.Warnings = warnings(cfg, plan)
	return plan
}

func echoConfig(cfg domain.ProcessConfig, p ProcessPlan) domain.ProcessConfig {
	out := cfg
	out.Controller.Heads = domain.DutyCycle{round1(p.Heads.Duty.Open()), p.Heads.Duty.Period()}
	out.Controller.LateHeads = domain.DutyCycle{round1(p.LateHeads.Duty.Open()), p.LateHeads.Duty.Period()}
	out.Controller.Hearts = domain.DutyCycle{round1(p.Hearts.Duty.Open()), p.Hearts.Duty.Period()}
	out.Controller.Tails = domain.DutyCycle{round1(p.Tails.Duty.Open()), p.Tails.Duty.Period()}
	out.Controller.HeadsTimerSec = roundInt(p.Heads.DurationSec)
	out.Controller.LateHeadsTimerSec = roundInt(p.LateHeads.DurationSec)
	if p.Hearts.ByTemperature {
		out.Hearts.Percent = p.Hearts.AchievedPercent
	}
	return out
}

func warnings(cfg domain.ProcessConfig, p ProcessPlan) []string {
	var out []string
	if total := cfg.EnabledPercentTotal(); total > 100 {
		out = append(out, fmt.Sprintf("cut percentages add up to %.1f%%, more than the batch holds", total))
	}
	if cfg.PowerKW <= 0 {
		out = append(out, "heater power is zero: durations are not meaningful")
	}
	ctl := cfg.Controller
	capacity := map[domain.Stage]float64{
		domain.StageHeads:     ctl.HeadsValveBW(),
		domain.StageLateHeads: ctl.LateHeadsValveBW(),
		domain.StageHearts:    ctl.BodyValveBW(),
		domain.StageTails:     ctl.TailsValveBW(),
	}
	for _, s := range p.Stages() {
		if s.Enabled && capacity[s.Stage] <= 0 {
			out = append(out, fmt.Sprintf("%s valve capacity is zero: duty cannot be computed", s.Stage.Label()))
		}
	}
	if p.Residual.AbsoluteAlcoholMl < 0 {
		out = append(out, "stages draw more alcohol than the batch contains")
	}
	return out
}

// roundInt rounds half up, matching how the controller firmware rounds timers.
func roundInt(x float64) float64 {
	return math.Floor(x + 0.5)
}

func roundTo(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(x*p) / p
}

func round1(x float64) float64 { return roundTo(x, 1) }

// StageValues holds one rounded number per stage.
type StageValues struct {
	Heads     float64 `json:"heads"`
	LateHeads float64 `json:"late_heads"`
	Hearts    float64 `json:"hearts"`
	Tails     float64 `json:"tails"`
}

// Flows are rounded mL/h.
type Flows struct {
	Heads        float64 `json:"heads"`
	HeadsRelease float64 `json:"heads_release"`
	HeadsFinal   float64 `json:"heads_final"`
	LateHeads    float64 `json:"late_heads"`
	Hearts       float64 `json:"hearts"`
	HeartsAvg    float64 `json:"hearts_avg"`
	HeartsFinal  float64 `json:"hearts_final"`
	Tails        float64 `json:"tails"`
}

// Fractions are collected volumes in mL.
type Fractions struct {
	ReleaseMl   float64 `json:"release_ml"`
	HeadsMl     float64 `json:"heads_ml"`
	LateHeadsMl float64 `json:"late_heads_ml"`
	HeartsMl    float64 `json:"hearts_ml"`
	TailsMl     float64 `json:"tails_ml"`
}

// Timers are rounded seconds.
type Timers struct {
	Heads        float64 `json:"heads"`
	LateHeads    float64 `json:"late_heads"`
	Hearts       float64 `json:"hearts"`
	Tails        float64 `json:"tails"`
	TotalProcess float64 `json:"total_process"`
}

// Analytics is the rounded summary the controller UI displays.
type Analytics struct {
	TotalAS          float64     `json:"total_as"`
	BoilingTemp      float64     `json:"boiling_temp"`
	ResidueMl        float64     `json:"residue_ml"`
	ResidualFortress float64     `json:"residual_fortress"`
	OneCycleTime     float64     `json:"one_cycle_time"`
	Flows            Flows       `json:"flows"`
	Fractions        Fractions   `json:"fractions"`
	Timers           Timers      `json:"timers"`
	RefluxRatio      StageValues `json:"reflux_ratio"`
	Phlegmatic       StageValues `json:"phlegmatic"`
}

func buildAnalytics(cfg domain.ProcessConfig, p ProcessPlan) Analytics {
	ratio := func(v float64) float64 { return roundTo(v, 2) }
	return Analytics{
		TotalAS:          roundInt(p.Initial.AbsoluteAlcoholMl),
		BoilingTemp:      roundTo(physics.BoilingPoint(cfg.StrengthVol), 2),
		ResidueMl:        roundInt(p.Residual.VolumeL * 1000),
		ResidualFortress: round1(p.Residual.StrengthVol),
		OneCycleTime:     roundInt(p.Heads.OneCycleSec),
		Flows: Flows{
			Heads:        roundInt(p.Heads.FlowMlh),
			HeadsRelease: roundInt(p.Heads.ReleaseFlowMlh),
			HeadsFinal:   roundInt(p.Heads.FinalFlowMlh),
			LateHeads:    roundInt(p.LateHeads.FlowMlh),
			Hearts:       roundInt(p.Hearts.FlowMlh),
			HeartsAvg:    roundInt(p.Hearts.AvgFlowMlh),
			HeartsFinal:  roundInt(p.Hearts.FinalFlowMlh),
			Tails:        roundInt(p.Tails.FlowMlh),
		},
		Fractions: Fractions{
			ReleaseMl:   roundTo(p.Heads.ReleaseMl, 2),
			HeadsMl:     roundInt(p.Heads.VolumeMl),
			LateHeadsMl: roundInt(p.LateHeads.VolumeMl),
			HeartsMl:    roundInt(p.Hearts.VolumeMl),
			TailsMl:     roundInt(p.Tails.VolumeMl),
		},
		Timers: Timers{
			Heads:        roundInt(p.Heads.DurationSec),
			LateHeads:    roundInt(p.LateHeads.DurationSec),
			Hearts:       roundInt(p.Hearts.DurationSec),
			Tails:        roundInt(p.Tails.DurationSec),
			TotalProcess: roundInt(p.TotalDurationSec),
		},
		RefluxRatio: StageValues{
			Heads:     ratio(p.Heads.RefluxRatio),
			LateHeads: ratio(p.LateHeads.RefluxRatio),
			Hearts:    ratio(p.Hearts.RefluxRatio),
			Tails:     ratio(p.Tails.RefluxRatio),
		},
		Phlegmatic: StageValues{
			Heads:     ratio(p.Heads.ReturnRatio),
			LateHeads: ratio(p.LateHeads.ReturnRatio),
			Hearts:    ratio(p.Hearts.ReturnRatio),
			Tails:     ratio(p.Tails.ReturnRatio),
		},
	}
}
