package physics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrengthForBoilingPoint_OutOfRange(t *testing.T) {
	assert.Equal(t, 0.0, StrengthForBoilingPoint(100))
	assert.Equal(t, 0.0, StrengthForBoilingPoint(120))
	assert.Equal(t, AzeotropeStrength, StrengthForBoilingPoint(78.15))
	assert.Equal(t, AzeotropeStrength, StrengthForBoilingPoint(60))
}

func TestStrengthForBoilingPoint_Known(t *testing.T) {
	s := StrengthForBoilingPoint(85)
	assert.InDelta(t, 85, BoilingPoint(s), 0.01)
	assert.Greater(t, s, 20.0)
	assert.Less(t, s, 40.0)
}

// TestStrengthForBoilingPoint_RoundTrip property-tests the bisection inverse
// over the whole open temperature range.
func TestStrengthForBoilingPoint_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 500; trial++ {
		target := 78.16 + rng.Float64()*(99.96-78.16)
		s := StrengthForBoilingPoint(target)

		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, AzeotropeStrength)
		assert.InDelta(t, target, BoilingPoint(s), 0.01,
			"trial %d: target %.4f resolved to %.4f%%", trial, target, s)
	}
}

func TestStrengthForBoilingPoint_Sweep(t *testing.T) {
	for target := 78.2; target < 99.95; target += 0.05 {
		s := StrengthForBoilingPoint(target)
		assert.InDelta(t, target, BoilingPoint(s), 0.01, "target %.2f", target)
	}
}
