package planner

import (
	"math"

	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/physics"
)

const (
	defaultHeadsPeriodSec = 10.0
	defaultHeadsCycles    = 2.0
	lateHeadsValveShare   = 0.1
	defaultHeartsEndTempC = 90.0
	defaultHysteresis     = 0.25
)

// StagePlan is the schedule for one fraction. Flow fields are mL/h.
type StagePlan struct {
	Stage        domain.Stage         `json:"stage"`
	Enabled      bool                 `json:"enabled"`
	VolumeMl     float64              `json:"volume_ml"`
	FlowMlh      float64              `json:"flow_mlh"`
	AvgFlowMlh   float64              `json:"avg_flow_mlh"`
	FinalFlowMlh float64              `json:"final_flow_mlh"`
	DurationSec  float64              `json:"duration_sec"`
	Duty         domain.DutyCycle     `json:"duty"`
	RefluxRatio  float64              `json:"reflux_ratio"`
	ReturnRatio  float64              `json:"return_ratio"`
	Vapor        physics.VaporPhysics `json:"vapor"`
	StartTempC   float64              `json:"start_temp_c"`
}

// HeadsPlan adds the pre-drain ("release") phase and the cycle diagnostic.
type HeadsPlan struct {
	StagePlan
	ReleaseFlowMlh float64 `json:"release_flow_mlh"`
	ReleaseMl      float64 `json:"release_ml"`
	MainDuration   float64 `json:"main_duration_sec"`
	OneCycleSec    float64 `json:"one_cycle_sec"`
}

// HeartsPlan records how the body volume was determined.
type HeartsPlan struct {
	StagePlan
	ByTemperature   bool    `json:"by_temperature"`
	EndStrengthVol  float64 `json:"end_strength_vol,omitempty"`
	AchievedPercent float64 `json:"achieved_percent"`
	EndTempC        float64 `json:"end_temp_c"`
	Decaying        bool    `json:"decaying"`
}

func disabledStage(stage domain.Stage, period float64) StagePlan {
	return StagePlan{Stage: stage, Duty: domain.DutyCycle{0, period}}
}

func openTime(flowMlh, valveBW, period float64) float64 {
	if valveBW <= 0 {
		return 0
	}
	return flowMlh / valveBW * period
}

func hoursFor(volumeMl, flowMlh float64) float64 {
	if flowMlh <= 0 {
		return 0
	}
	return volumeMl / flowMlh * 3600
}

// OneCycleSec is the time the heater needs to vaporize alcoholMl of pure
// alcohol from a still producing vapor. Zero when unpowered.
func OneCycleSec(alcoholMl, heaterWatts float64, vapor physics.VaporPhysics) float64 {
	if heaterWatts <= 0 || vapor.LatentHeatMix <= 0 {
		return 0
	}
	alcoholMassG := alcoholMl * physics.EthanolDensity
	vaporKgPerSec := heaterWatts / 1000 / vapor.LatentHeatMix
	alcoholGPerSec := vaporKgPerSec * vapor.StrengthMass * 1000
	if alcoholGPerSec <= 0 {
		return 0
	}
	return alcoholMassG / alcoholGPerSec
}

// PlanHeads schedules the early cut: an optional pre-drain at a fixed valve
// opening, then the main draw at a start flow that may decline linearly to a
// final flow. Stabilization time is folded into the stage duration.
func PlanHeads(cfg domain.ProcessConfig, initial, st BatchState) (HeadsPlan, BatchState) {
	ctl := cfg.Controller
	period := domain.PositiveOr(ctl.Heads.Period(), defaultHeadsPeriodSec)
	if !cfg.Heads.Enabled {
		return HeadsPlan{StagePlan: disabledStage(domain.StageHeads, period)}, st
	}

	watts := cfg.HeaterWatts()
	bw := ctl.HeadsValveBW()
	vapor := physics.Vapor(st.StrengthVol, watts)

	total := initial.AbsoluteAlcoholMl * cfg.Heads.Percent / 100
	releaseTimer := math.Max(0, ctl.ReleaseTimerSec)
	releaseOpen := math.Max(0, ctl.ReleaseSpeedSec)
	finalOpen := math.Max(0, ctl.HeadsFinalSec)

	oneCycle := OneCycleSec(initial.AbsoluteAlcoholMl, watts, vapor)
	releaseFlow := releaseOpen / period * bw
	releaseMl := releaseFlow * releaseTimer / 3600
	remaining := math.Max(0, total-releaseMl)

	var start float64
	if cfg.Heads.TargetFlowMlh > 0 {
		start = math.Min(cfg.Heads.TargetFlowMlh, bw)
	} else {
		cycles := domain.PositiveOr(cfg.Heads.TargetCycles, defaultHeadsCycles)
		targetTotal := math.Max(1, oneCycle*cycles)
		start = remaining * 3600 / math.Max(1, targetTotal-releaseTimer)
	}

	final := start
	if finalOpen > 0 {
		final = finalOpen / period * bw
	}

	avg := start
	if finalOpen > 0 && final < start {
		avg = (start + final) / 2
	}
	var main float64
	if remaining > 0 {
		main = hoursFor(remaining, avg)
	}

	plan := HeadsPlan{
		StagePlan: StagePlan{
			Stage:        domain.StageHeads,
			Enabled:      true,
			VolumeMl:     total,
			FlowMlh:      start,
			AvgFlowMlh:   avg,
			FinalFlowMlh: final,
			DurationSec:  releaseTimer + main + cfg.StabilizationMin*60,
			Duty:         domain.DutyCycle{openTime(start, bw, period), period},
			RefluxRatio:  physics.RefluxRatio(vapor.VolumePerHour, start),
			ReturnRatio:  physics.ReturnRatio(watts, start),
			Vapor:        vapor,
			StartTempC:   vapor.BoilingC,
		},
		ReleaseFlowMlh: releaseFlow,
		ReleaseMl:      releaseMl,
		MainDuration:   main,
		OneCycleSec:    oneCycle,
	}
	return plan, st.Withdraw(total)
}

// PlanLateHeads schedules the late-early cut at a constant flow. Without a
// target flow it draws at a tenth of the valve's capacity.
func PlanLateHeads(cfg domain.ProcessConfig, initial, st BatchState) (StagePlan, BatchState) {
	ctl := cfg.Controller
	period := ctl.LateHeads.Period()
	if !cfg.LateHeads.Enabled {
		return disabledStage(domain.StageLateHeads, period), st
	}

	watts := cfg.HeaterWatts()
	bw := ctl.LateHeadsValveBW()
	vapor := physics.Vapor(st.StrengthVol, watts)

	volume := initial.AbsoluteAlcoholMl * cfg.LateHeads.Percent / 100
	flow := cfg.LateHeads.TargetFlowMlh
	if flow <= 0 {
		flow = bw * lateHeadsValveShare
	}

	plan := StagePlan{
		Stage:        domain.StageLateHeads,
		Enabled:      true,
		VolumeMl:     volume,
		FlowMlh:      flow,
		AvgFlowMlh:   flow,
		FinalFlowMlh: flow,
		DurationSec:  hoursFor(volume, flow),
		Duty:         domain.DutyCycle{openTime(flow, bw, period), period},
		RefluxRatio:  physics.RefluxRatio(vapor.VolumePerHour, flow),
		ReturnRatio:  physics.ReturnRatio(watts, flow),
		Vapor:        vapor,
		StartTempC:   vapor.BoilingC,
	}
	return plan, st.Withdraw(volume)
}

// PlanHearts schedules the body. With a finishing temperature the volume is
// whatever alcohol must leave the still for it to boil at that temperature;
// otherwise it is a share of the initial alcohol. The draw may decay
// geometrically, one step per hysteresis band crossed.
func PlanHearts(cfg domain.ProcessConfig, initial, st BatchState) (HeartsPlan, BatchState) {
	ctl := cfg.Controller
	period := ctl.Hearts.Period()
	if !cfg.Hearts.Enabled {
		return HeartsPlan{StagePlan: disabledStage(domain.StageHearts, period)}, st
	}

	watts := cfg.HeaterWatts()
	bw := ctl.BodyValveBW()
	vapor := physics.Vapor(st.StrengthVol, watts)

	plan := HeartsPlan{AchievedPercent: cfg.Hearts.Percent}
	var volume float64
	if ctl.HeartsFinishTemp > 0 {
		endStrength := physics.StrengthForBoilingPoint(ctl.HeartsFinishTemp)
		remainingAS := st.VolumeL * 1000 * endStrength / 100
		volume = math.Max(0, st.AbsoluteAlcoholMl-remainingAS) / DrawPurity

		plan.ByTemperature = true
		plan.EndStrengthVol = endStrength
		plan.AchievedPercent = 0
		if initial.AbsoluteAlcoholMl > 0 {
			plan.AchievedPercent = round1(volume * DrawPurity / initial.AbsoluteAlcoholMl * 100)
		}
	} else {
		volume = initial.AbsoluteAlcoholMl * cfg.Hearts.Percent / 100 / DrawPurity
	}

	startTemp := physics.BoilingPoint(st.StrengthVol)
	endTemp := domain.PositiveOr(ctl.HeartsFinishTemp, defaultHeartsEndTempC)
	hyst := domain.PositiveOr(ctl.Hysteresis, defaultHysteresis)
	dec := ctl.DecrementPct / 100

	initialSpeed := cfg.Hearts.TargetFlowMlh
	if initialSpeed <= 0 {
		initialSpeed = vapor.VolumePerHour * 1000
	}
	avg, final := initialSpeed, initialSpeed

	// A decrement of 100 % or more has no defined decay curve.
	if ctl.Formula && dec > 0 && dec < 1 && endTemp > startTemp {
		n := math.Max(0.1, (endTemp-startTemp)/(hyst*2))
		keep := math.Pow(1-dec, n)
		final = initialSpeed * keep
		avg = initialSpeed * (keep - 1) / (n * math.Log(1-dec))
		plan.Decaying = true
	}

	plan.EndTempC = endTemp
	plan.StagePlan = StagePlan{
		Stage:        domain.StageHearts,
		Enabled:      true,
		VolumeMl:     volume,
		FlowMlh:      initialSpeed,
		AvgFlowMlh:   avg,
		FinalFlowMlh: final,
		DurationSec:  hoursFor(volume, avg),
		Duty:         domain.DutyCycle{openTime(initialSpeed, bw, period), period},
		RefluxRatio:  physics.RefluxRatio(vapor.VolumePerHour, initialSpeed),
		ReturnRatio:  physics.ReturnRatio(watts, initialSpeed),
		Vapor:        vapor,
		StartTempC:   startTemp,
	}
	return plan, st.Withdraw(volume)
}

// PlanTails schedules the late cut. Without a target flow it drains at the
// full capacity of the tails valve.
func PlanTails(cfg domain.ProcessConfig, initial, st BatchState) (StagePlan, BatchState) {
	ctl := cfg.Controller
	period := ctl.Tails.Period()
	if !cfg.Tails.Enabled {
		return disabledStage(domain.StageTails, period), st
	}

	watts := cfg.HeaterWatts()
	bw := ctl.TailsValveBW()
	vapor := physics.Vapor(st.StrengthVol, watts)

	volume := initial.AbsoluteAlcoholMl * cfg.Tails.Percent / 100
	flow := cfg.Tails.TargetFlowMlh
	if flow <= 0 {
		flow = bw
	}

	plan := StagePlan{
		Stage:        domain.StageTails,
		Enabled:      true,
		VolumeMl:     volume,
		FlowMlh:      flow,
		AvgFlowMlh:   flow,
		FinalFlowMlh: flow,
		DurationSec:  hoursFor(volume, flow),
		Duty:         domain.DutyCycle{openTime(flow, bw, period), period},
		RefluxRatio:  physics.RefluxRatio(vapor.VolumePerHour, flow),
		ReturnRatio:  physics.ReturnRatio(watts, flow),
		Vapor:        vapor,
		StartTempC:   vapor.BoilingC,
	}
	return plan, st.Withdraw(volume)
}
