package physics

import "math"

// Sentinels returned when the draw rate is zero (total reflux).
const (
	RefluxClosed = 999.0
	ReturnClosed = 99.9
)

// Constant-property reference values for ReturnRatio.
const (
	refLatentHeatKJkg = 857.0
	refDensityKgL     = 0.789
)

// RefluxRatio is vapor / draw - 1. vaporLh is condensate L/h, drawMlh is the
// product draw in mL/h. A draw above the vapor supply reports 0.
func RefluxRatio(vaporLh, drawMlh float64) float64 {
	if drawMlh <= 0 {
		return RefluxClosed
	}
	return math.Max(0, vaporLh/(drawMlh/1000)-1)
}

// ReturnRatio estimates the phlegm number (returned / drawn) from heater
// power alone, assuming pure-alcohol vapor properties.
func ReturnRatio(heaterWatts, drawMlh float64) float64 {
	if drawMlh <= 0 {
		return ReturnClosed
	}
	vaporMlh := heaterWatts * 3.6 / refLatentHeatKJkg / refDensityKgL * 1000
	return math.Max(0, (vaporMlh-drawMlh)/drawMlh)
}
