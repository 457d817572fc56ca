package domain

// DefaultConfig returns the settings a new profile starts from.
func DefaultConfig() ProcessConfig {
	return ProcessConfig{
		PowerKW:          2.5,
		VolumeL:          18,
		StrengthVol:      40,
		StabilizationMin: 20,
		Heads: StageConfig{
			Enabled:      true,
			Percent:      3,
			TargetCycles: 2,
		},
		LateHeads: StageConfig{
			Enabled:       true,
			Percent:       7,
			TargetFlowMlh: 150,
		},
		Hearts: StageConfig{
			Enabled:       true,
			Percent:       75,
			TargetFlowMlh: 2500,
		},
		Tails: StageConfig{
			Enabled:       false,
			Percent:       5,
			TargetFlowMlh: 2500,
		},
		Controller: ControllerSettings{
			ValveBW:    [3]float64{7000, 12000, 7000},
			Heads:      DutyCycle{0, 120},
			LateHeads:  DutyCycle{0, 60},
			Hearts:     DutyCycle{0, 10},
			Tails:      DutyCycle{0, 2},
			Hysteresis: 0.06,
		},
	}
}

// Normalize fills structural controller fields left at zero from the
// defaults and clears percent and target flow of disabled late heads and
// tails. Operator choices that are legitimately zero (target flows meaning
// "auto", timers, decrement) are kept.
func Normalize(c ProcessConfig) ProcessConfig {
	def := DefaultConfig()
	out := c

	for i := range out.Controller.ValveBW {
		out.Controller.ValveBW[i] = PositiveOr(out.Controller.ValveBW[i], def.Controller.ValveBW[i])
	}
	out.Controller.Heads[1] = PositiveOr(out.Controller.Heads.Period(), def.Controller.Heads.Period())
	out.Controller.LateHeads[1] = PositiveOr(out.Controller.LateHeads.Period(), def.Controller.LateHeads.Period())
	out.Controller.Hearts[1] = PositiveOr(out.Controller.Hearts.Period(), def.Controller.Hearts.Period())
	out.Controller.Tails[1] = PositiveOr(out.Controller.Tails.Period(), def.Controller.Tails.Period())
	out.Controller.Hysteresis = PositiveOr(out.Controller.Hysteresis, def.Controller.Hysteresis)

	if !out.LateHeads.Enabled {
		out.LateHeads.Percent = 0
		out.LateHeads.TargetFlowMlh = 0
	}
	if !out.Tails.Enabled {
		out.Tails.Percent = 0
		out.Tails.TargetFlowMlh = 0
	}
	return out
}

// EnabledPercentTotal sums the cut percentages of enabled stages.
func (c ProcessConfig) EnabledPercentTotal() float64 {
	var total float64
	for _, s := range Stages {
		if sc := c.Stage(s); sc.Enabled {
			total += sc.Percent
		}
	}
	return total
}
