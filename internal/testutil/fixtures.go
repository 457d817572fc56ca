package testutil

import (
	"time"

	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/google/uuid"
)

// Profile options
type ProfileOption func(*domain.Profile)

func WithBatch(volumeL, strengthVol float64) ProfileOption {
	return func(p *domain.Profile) {
		p.Config.VolumeL = volumeL
		p.Config.StrengthVol = strengthVol
	}
}

func WithPower(kw float64) ProfileOption {
	return func(p *domain.Profile) {
		p.Config.PowerKW = kw
	}
}

func WithTails(percent, flowMlh float64) ProfileOption {
	return func(p *domain.Profile) {
		p.Config.Tails = domain.StageConfig{Enabled: true, Percent: percent, TargetFlowMlh: flowMlh}
	}
}

func WithFinishTemp(c float64) ProfileOption {
	return func(p *domain.Profile) {
		p.Config.Controller.HeartsFinishTemp = c
	}
}

func WithDecay(decrementPct float64) ProfileOption {
	return func(p *domain.Profile) {
		p.Config.Controller.Formula = true
		p.Config.Controller.DecrementPct = decrementPct
	}
}

func WithConfig(cfg domain.ProcessConfig) ProfileOption {
	return func(p *domain.Profile) {
		p.Config = cfg
	}
}

func WithActive() ProfileOption {
	return func(p *domain.Profile) {
		p.IsActive = true
	}
}

// NewTestProfile returns an unsaved profile built on the default config.
func NewTestProfile(name string, opts ...ProfileOption) *domain.Profile {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Profile{
		ID:        uuid.New().String(),
		Name:      name,
		Config:    domain.DefaultConfig(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
