package domain

import "time"

// Profile is a named, saved ProcessConfig.
type Profile struct {
	ID       string
	Name     string
	Notes    string
	Config   ProcessConfig
	IsActive bool
	// AppliedAt is set when the derived duty tuples and timers were last
	// written back into Config.
	AppliedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayID returns the first 8 characters of the profile ID.
func (p *Profile) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// PlanRun is a stored snapshot of a plan computed for a profile.
type PlanRun struct {
	ID               string
	ProfileID        string
	TotalDurationSec float64
	HeartsMl         float64
	// Plan is the JSON-encoded plan as produced at the time.
	Plan      []byte
	CreatedAt time.Time
}
