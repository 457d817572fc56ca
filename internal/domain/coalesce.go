package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// FirstPositive returns the first value greater than zero, or 0.
func FirstPositive(vals ...float64) float64 {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

// PositiveOr returns v when it is positive, otherwise fallback.
func PositiveOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
