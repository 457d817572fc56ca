package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBatchState_AbsoluteAlcohol(t *testing.T) {
	assert.Equal(t, 8000.0, NewBatchState(20, 40).AbsoluteAlcoholMl)
	assert.Equal(t, 200.0, NewBatchState(0.5, 40).AbsoluteAlcoholMl)
	assert.Equal(t, 0.0, NewBatchState(20, 0).AbsoluteAlcoholMl)
}

func TestWithdraw_DeductsAtDrawPurity(t *testing.T) {
	st := NewBatchState(20, 40)
	next := st.Withdraw(240)

	assert.InDelta(t, 8000-240*DrawPurity, next.AbsoluteAlcoholMl, 1e-9)
	assert.InDelta(t, 19.76, next.VolumeL, 1e-9)
	assert.InDelta(t, next.AbsoluteAlcoholMl/(19.76*10), next.StrengthVol, 1e-9)

	// receiver untouched
	assert.Equal(t, 8000.0, st.AbsoluteAlcoholMl)
	assert.Equal(t, 20.0, st.VolumeL)
}

func TestWithdraw_FloorsStrength(t *testing.T) {
	st := NewBatchState(1, 10) // 100 mL alcohol
	next := st.Withdraw(200)   // draws more alcohol than present

	assert.Less(t, next.AbsoluteAlcoholMl, 0.0)
	assert.Equal(t, MinStrength, next.StrengthVol)
}

func TestWithdraw_EmptyStill(t *testing.T) {
	st := NewBatchState(1, 40)
	next := st.Withdraw(1000)

	assert.InDelta(t, 0, next.VolumeL, 1e-12)
	assert.Equal(t, MinStrength, next.StrengthVol)
}

func TestWithdraw_NonIncreasing(t *testing.T) {
	st := NewBatchState(18, 40)
	for _, ml := range []float64{0, 10, 250, 3000} {
		next := st.Withdraw(ml)
		assert.LessOrEqual(t, next.VolumeL, st.VolumeL)
		assert.LessOrEqual(t, next.AbsoluteAlcoholMl, st.AbsoluteAlcoholMl)
		st = next
	}
}
