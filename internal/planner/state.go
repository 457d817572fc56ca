package planner

import "math"

// DrawPurity is the assumed alcohol fraction of anything drawn off the
// column. Collected volume times DrawPurity is the absolute alcohol removed
// from the still.
const DrawPurity = 0.96

// MinStrength is the floor applied to the still's composition between stages.
const MinStrength = 0.1

// BatchState is the content of the still between two stages.
type BatchState struct {
	VolumeL           float64 `json:"volume_l"`
	StrengthVol       float64 `json:"strength_vol"`
	AbsoluteAlcoholMl float64 `json:"absolute_alcohol_ml"`
}

// NewBatchState derives the absolute alcohol of a fresh charge.
func NewBatchState(volumeL, strengthVol float64) BatchState {
	return BatchState{
		VolumeL:           volumeL,
		StrengthVol:       strengthVol,
		AbsoluteAlcoholMl: volumeL * 1000 * strengthVol / 100,
	}
}

// Withdraw returns the state left after collecting collectedMl of product.
// The receiver is not modified. Negative remainders from degenerate input
// are carried through; only the strength is floored.
func (s BatchState) Withdraw(collectedMl float64) BatchState {
	next := BatchState{
		VolumeL:           s.VolumeL - collectedMl/1000,
		AbsoluteAlcoholMl: s.AbsoluteAlcoholMl - collectedMl*DrawPurity,
	}
	next.StrengthVol = MinStrength
	if next.VolumeL > 0 {
		next.StrengthVol = math.Max(MinStrength, next.AbsoluteAlcoholMl/(next.VolumeL*10))
	}
	return next
}
