package physics

const (
	bisectionMaxIter   = 20
	bisectionTolerance = 0.01
)

// StrengthForBoilingPoint finds the liquid strength (vol %) that boils at
// targetC. The boiling curve is strictly decreasing, so a bounded bisection
// over [0, AzeotropeStrength] converges. When the iteration cap is reached
// the last lower bound is returned as a best-effort estimate.
func StrengthForBoilingPoint(targetC float64) float64 {
	if targetC >= 100 {
		return 0
	}
	if targetC <= AzeotropeBoilingC {
		return AzeotropeStrength
	}

	lo, hi := 0.0, AzeotropeStrength
	for i := 0; i < bisectionMaxIter; i++ {
		mid := (lo + hi) / 2
		temp := BoilingPoint(mid)
		if abs(temp-targetC) < bisectionTolerance {
			return mid
		}
		// Higher strength boils cooler.
		if temp > targetC {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
