package physics

import "math"

const (
	// AzeotropeStrength is the vol % at which vapor and liquid compositions coincide.
	AzeotropeStrength = 97.17
	// AzeotropeBoilingC is the boiling point of the azeotropic mixture.
	AzeotropeBoilingC = 78.15
	// WaterBoilingC is the fitted boiling point of pure water.
	WaterBoilingC = 99.97

	// EthanolDensity is kg/L at room temperature.
	EthanolDensity = 0.7893
	// WaterDensity is the reference density used for vol-to-mass conversion.
	WaterDensity = 1.0
	// HotWaterDensity approximates water density near its boiling point.
	// It only affects the condensed-vapor volume estimate.
	HotWaterDensity = 0.96
)

// VaporPhysics describes the vapor leaving the still for a given liquid
// composition and heater power.
type VaporPhysics struct {
	BoilingC      float64 `json:"boiling_c"`
	StrengthVol   float64 `json:"strength_vol"`  // vol % alcohol in vapor
	StrengthMass  float64 `json:"strength_mass"` // mass fraction [0,1]
	LatentHeatMix float64 `json:"latent_heat_mix"`
	MassPerHour   float64 `json:"mass_per_hour"`   // kg/h
	VolumePerHour float64 `json:"volume_per_hour"` // L/h of condensate
}

// VaporStrength returns the vol % of alcohol in vapor above a liquid of
// strength b (vol %). Empirical fit of ethanol-water equilibrium data.
func VaporStrength(b float64) float64 {
	if b <= 0 {
		return 0
	}
	if b >= AzeotropeStrength {
		return AzeotropeStrength
	}

	poly := 1.04749494522173*b -
		0.018725730342732*math.Pow(b, 2) +
		0.00011082005414225*math.Pow(b, 3)

	rise := 43.670453012901 * (1 - math.Exp(-0.246196276366746*math.Pow(b, 0.966659341971092)))
	scale := math.Exp(0.0638669100921283 * math.Pow(b, 0.437695537197651))

	return poly + rise*scale
}

// BoilingPoint returns the boiling temperature (°C) of a liquid with strength b.
func BoilingPoint(b float64) float64 {
	if b <= 0 {
		return WaterBoilingC
	}
	if b >= AzeotropeStrength {
		return AzeotropeBoilingC
	}

	return 99.974 -
		0.93136*b +
		0.02395*math.Pow(b, 2) -
		0.000365956*math.Pow(b, 3) +
		0.00000293273*math.Pow(b, 4) -
		0.00000000961*math.Pow(b, 5)
}

// LatentHeatWater approximates water heat of vaporization (kJ/kg) at tempC.
func LatentHeatWater(tempC float64) float64 {
	return 2501 - 2.384*tempC
}

// LatentHeatEthanol approximates ethanol heat of vaporization (kJ/kg) at tempC.
func LatentHeatEthanol(tempC float64) float64 {
	return 940 - 1.12*tempC
}

// VolumeToMassFraction converts an alcohol volume fraction (0..1) to a mass
// fraction using fixed reference densities.
func VolumeToMassFraction(volFraction float64) float64 {
	if volFraction <= 0 {
		return 0
	}
	mEth := volFraction * EthanolDensity
	mWater := (1 - volFraction) * WaterDensity
	return mEth / (mEth + mWater)
}

// Vapor computes the vapor stream produced by heaterWatts from a liquid of
// strength liquidStrength.
func Vapor(liquidStrength, heaterWatts float64) VaporPhysics {
	temp := BoilingPoint(liquidStrength)
	strengthVol := VaporStrength(liquidStrength)
	strengthMass := VolumeToMassFraction(strengthVol / 100)

	lMix := strengthMass*LatentHeatEthanol(temp) + (1-strengthMass)*LatentHeatWater(temp)
	massPerHour := heaterWatts * 3600 / (lMix * 1000)
	volumePerHour := massPerHour*strengthMass/EthanolDensity + massPerHour*(1-strengthMass)/HotWaterDensity

	return VaporPhysics{
		BoilingC:      temp,
		StrengthVol:   strengthVol,
		StrengthMass:  strengthMass,
		LatentHeatMix: lMix,
		MassPerHour:   massPerHour,
		VolumePerHour: volumePerHour,
	}
}
