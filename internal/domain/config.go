package domain

// DutyCycle is a valve pulse pair [open seconds, period seconds].
type DutyCycle [2]float64

// Open returns the valve-open time per period in seconds.
func (d DutyCycle) Open() float64 { return d[0] }

// Period returns the pulse period in seconds.
func (d DutyCycle) Period() float64 { return d[1] }

// StageConfig holds the operator's settings for one fraction.
type StageConfig struct {
	Enabled       bool    `json:"enabled" toml:"enabled"`
	Percent       float64 `json:"percent" toml:"percent"` // share of total absolute alcohol
	TargetFlowMlh float64 `json:"target_flow_mlh" toml:"target_flow_mlh"`
	// TargetCycles is the number of vaporization cycles heads should span
	// when no explicit flow is set. Heads only.
	TargetCycles float64 `json:"target_cycles,omitempty" toml:"target_cycles,omitempty"`
}

// ControllerSettings mirrors the valve controller's settings block. Duty
// tuples and timers are written back by the planner.
type ControllerSettings struct {
	// ValveBW is the measured throughput (mL/h) of valves 1..3.
	ValveBW        [3]float64 `json:"valve_bw" toml:"valve_bw"`
	VirtualLateBW  float64    `json:"virtual_late_bw,omitempty" toml:"virtual_late_bw,omitempty"`
	VirtualTailsBW float64    `json:"virtual_tails_bw,omitempty" toml:"virtual_tails_bw,omitempty"`

	Heads     DutyCycle `json:"heads" toml:"heads"`
	LateHeads DutyCycle `json:"late_heads" toml:"late_heads"`
	Hearts    DutyCycle `json:"hearts" toml:"hearts"`
	Tails     DutyCycle `json:"tails" toml:"tails"`

	// Heads pre-drain ("release") and decline.
	ReleaseTimerSec float64 `json:"release_timer" toml:"release_timer"`
	ReleaseSpeedSec float64 `json:"release_speed" toml:"release_speed"`
	HeadsFinalSec   float64 `json:"heads_final" toml:"heads_final"`

	HeartsFinishTemp float64 `json:"hearts_finish_temp" toml:"hearts_finish_temp"`
	Formula          bool    `json:"formula" toml:"formula"`
	DecrementPct     float64 `json:"decrement" toml:"decrement"`
	Hysteresis       float64 `json:"hyst" toml:"hyst"`

	HeadsTimerSec     float64 `json:"heads_timer" toml:"heads_timer"`
	LateHeadsTimerSec float64 `json:"late_heads_timer" toml:"late_heads_timer"`
}

// ProcessConfig is the complete input of one planning run.
type ProcessConfig struct {
	PowerKW          float64 `json:"power_kw" toml:"power_kw"`
	VolumeL          float64 `json:"volume_l" toml:"volume_l"`
	StrengthVol      float64 `json:"strength_vol" toml:"strength_vol"`
	StabilizationMin float64 `json:"stabilization_min" toml:"stabilization_min"`

	Heads     StageConfig `json:"heads" toml:"heads"`
	LateHeads StageConfig `json:"late_heads" toml:"late_heads"`
	Hearts    StageConfig `json:"hearts" toml:"hearts"`
	Tails     StageConfig `json:"tails" toml:"tails"`

	Controller ControllerSettings `json:"controller" toml:"controller"`
}

// Stage returns the settings for s.
func (c ProcessConfig) Stage(s Stage) StageConfig {
	switch s {
	case StageHeads:
		return c.Heads
	case StageLateHeads:
		return c.LateHeads
	case StageHearts:
		return c.Hearts
	default:
		return c.Tails
	}
}

// HeaterWatts returns the net heater power in watts.
func (c ProcessConfig) HeaterWatts() float64 {
	return c.PowerKW * 1000
}

// Duty returns the valve pulse for s.
func (s ControllerSettings) Duty(stage Stage) DutyCycle {
	switch stage {
	case StageHeads:
		return s.Heads
	case StageLateHeads:
		return s.LateHeads
	case StageHearts:
		return s.Hearts
	default:
		return s.Tails
	}
}

// HeadsValveBW is the capacity of the heads valve.
func (s ControllerSettings) HeadsValveBW() float64 {
	return FirstPositive(s.ValveBW[0])
}

// BodyValveBW is the capacity of the hearts (body) valve.
func (s ControllerSettings) BodyValveBW() float64 {
	return FirstPositive(s.ValveBW[1])
}

// LateHeadsValveBW prefers the calculator's virtual capacity, then valve 3.
func (s ControllerSettings) LateHeadsValveBW() float64 {
	return FirstPositive(s.VirtualLateBW, s.ValveBW[2])
}

// TailsValveBW prefers the virtual capacity, then valve 3, then the body valve.
func (s ControllerSettings) TailsValveBW() float64 {
	return FirstPositive(s.VirtualTailsBW, s.ValveBW[2], s.ValveBW[1])
}
