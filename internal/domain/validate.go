package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNonFiniteInput marks configuration values that would make the
	// physics produce NaN or infinities.
	ErrNonFiniteInput = errors.New("non-finite input")
	// ErrInvalidDecrement marks a decay decrement outside [0, 100) percent.
	ErrInvalidDecrement = errors.New("invalid decrement")
)

// Validate reports every out-of-contract value in c. The planner itself
// never fails; callers run Validate first and refuse to plan on errors.
func (c ProcessConfig) Validate() []error {
	var errs []error

	check := func(field string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s: %w (%v)", field, ErrNonFiniteInput, v))
		}
	}
	nonNegative := func(field string, v float64) {
		check(field, v)
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s: %w: must not be negative (%v)", field, ErrNonFiniteInput, v))
		}
	}

	nonNegative("power_kw", c.PowerKW)
	nonNegative("volume_l", c.VolumeL)
	nonNegative("stabilization_min", c.StabilizationMin)
	check("strength_vol", c.StrengthVol)
	if c.StrengthVol < 0 || c.StrengthVol > 100 {
		errs = append(errs, fmt.Errorf("strength_vol: must be within 0..100 (%v)", c.StrengthVol))
	}

	for _, s := range Stages {
		sc := c.Stage(s)
		nonNegative(string(s)+".percent", sc.Percent)
		nonNegative(string(s)+".target_flow_mlh", sc.TargetFlowMlh)
		check(string(s)+".target_cycles", sc.TargetCycles)
	}

	ctl := c.Controller
	for i, bw := range ctl.ValveBW {
		nonNegative(fmt.Sprintf("controller.valve_bw[%d]", i), bw)
	}
	check("controller.virtual_late_bw", ctl.VirtualLateBW)
	check("controller.virtual_tails_bw", ctl.VirtualTailsBW)
	for _, s := range Stages {
		nonNegative("controller."+string(s)+" period", ctl.Duty(s).Period())
	}
	check("controller.release_timer", ctl.ReleaseTimerSec)
	check("controller.release_speed", ctl.ReleaseSpeedSec)
	check("controller.heads_final", ctl.HeadsFinalSec)
	check("controller.hearts_finish_temp", ctl.HeartsFinishTemp)
	check("controller.hyst", ctl.Hysteresis)

	check("controller.decrement", ctl.DecrementPct)
	if ctl.DecrementPct < 0 || ctl.DecrementPct >= 100 {
		errs = append(errs, fmt.Errorf("controller.decrement: %w: must be within [0, 100) percent (%v)", ErrInvalidDecrement, ctl.DecrementPct))
	}

	return errs
}
