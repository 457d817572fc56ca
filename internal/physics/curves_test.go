package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoilingPoint_Endpoints(t *testing.T) {
	assert.InDelta(t, 99.97, BoilingPoint(0), 0.01)
	assert.InDelta(t, 78.15, BoilingPoint(97.17), 0.01)
	assert.Equal(t, 99.97, BoilingPoint(-10))
	assert.Equal(t, 78.15, BoilingPoint(120))
}

func TestBoilingPoint_ReferencePoints(t *testing.T) {
	tests := []struct {
		strength float64
		want     float64
	}{
		{10, 92.7178103},
		{40, 84.1421408},
		{80, 80.0103008},
	}
	for _, tt := range tests {
		assert.InEpsilon(t, tt.want, BoilingPoint(tt.strength), 1e-6, "strength %v", tt.strength)
	}
}

func TestBoilingPoint_MonotonicallyDecreasing(t *testing.T) {
	prev := BoilingPoint(0.001)
	for b := 0.1; b < AzeotropeStrength; b += 0.1 {
		cur := BoilingPoint(b)
		assert.Less(t, cur, prev, "boiling point must fall at %.1f%%", b)
		prev = cur
	}
}

func TestVaporStrength_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, VaporStrength(0))
	assert.Equal(t, 0.0, VaporStrength(-5))
	assert.Equal(t, AzeotropeStrength, VaporStrength(97.17))
	assert.Equal(t, AzeotropeStrength, VaporStrength(100))
}

func TestVaporStrength_ReferencePoints(t *testing.T) {
	assert.InEpsilon(t, 55.41331620958661, VaporStrength(10), 1e-6)
	assert.InEpsilon(t, 79.22047889079415, VaporStrength(40), 1e-6)
	assert.InEpsilon(t, 95.30998115540879, VaporStrength(95), 1e-6)
}

func TestVaporStrength_MonotonicallyIncreasing(t *testing.T) {
	prev := 0.0
	for b := 0.1; b < AzeotropeStrength; b += 0.1 {
		cur := VaporStrength(b)
		assert.Greater(t, cur, prev, "vapor strength must rise at %.1f%%", b)
		prev = cur
	}
}

func TestVaporStrength_EnrichesVapor(t *testing.T) {
	for _, b := range []float64{5, 20, 40, 60, 80} {
		assert.Greater(t, VaporStrength(b), b)
	}
}

func TestLatentHeat(t *testing.T) {
	assert.InDelta(t, 2501.0, LatentHeatWater(0), 1e-9)
	assert.InDelta(t, 2501-2.384*100, LatentHeatWater(100), 1e-9)
	assert.InDelta(t, 940.0, LatentHeatEthanol(0), 1e-9)
	assert.InDelta(t, 940-1.12*78.15, LatentHeatEthanol(78.15), 1e-9)
}

func TestVolumeToMassFraction(t *testing.T) {
	assert.Equal(t, 0.0, VolumeToMassFraction(0))
	assert.Equal(t, 0.0, VolumeToMassFraction(-0.3))
	assert.InDelta(t, 1.0, VolumeToMassFraction(1), 1e-12)

	half := VolumeToMassFraction(0.5)
	assert.InDelta(t, 0.7893/1.7893, half, 1e-12)
	assert.Less(t, half, 0.5, "ethanol is lighter than water")
}

func TestVapor_ComposesCurves(t *testing.T) {
	v := Vapor(40, 2500)

	temp := BoilingPoint(40)
	mass := VolumeToMassFraction(VaporStrength(40) / 100)
	lMix := mass*LatentHeatEthanol(temp) + (1-mass)*LatentHeatWater(temp)
	kgh := 2500 * 3600 / (lMix * 1000)

	assert.InDelta(t, temp, v.BoilingC, 1e-12)
	assert.InDelta(t, mass, v.StrengthMass, 1e-12)
	assert.InDelta(t, lMix, v.LatentHeatMix, 1e-9)
	assert.InDelta(t, kgh, v.MassPerHour, 1e-9)
	assert.InDelta(t, kgh*mass/EthanolDensity+kgh*(1-mass)/HotWaterDensity, v.VolumePerHour, 1e-9)
	assert.Greater(t, v.LatentHeatMix, LatentHeatEthanol(temp))
	assert.Less(t, v.LatentHeatMix, LatentHeatWater(temp))
}

func TestVapor_NoPowerNoVapor(t *testing.T) {
	v := Vapor(40, 0)
	assert.Equal(t, 0.0, v.MassPerHour)
	assert.Equal(t, 0.0, v.VolumePerHour)
	assert.False(t, math.IsNaN(v.LatentHeatMix))
}
