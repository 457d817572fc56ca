package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/importer"
	"github.com/alexanderramin/rectplan/internal/planner"
)

var (
	// ErrInvalidConfig wraps every validation failure of a process config
	// or profile file.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrAmbiguousRef is returned when a profile reference matches several
	// profiles.
	ErrAmbiguousRef = errors.New("ambiguous profile reference")
)

type ProfileService interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	// Resolve finds a profile by full ID, then name, then unique ID prefix.
	Resolve(ctx context.Context, ref string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	UpdateConfig(ctx context.Context, id string, cfg domain.ProcessConfig) (*domain.Profile, error)
	Rename(ctx context.Context, id, name string) (*domain.Profile, error)
	Copy(ctx context.Context, id, name string) (*domain.Profile, error)
	Delete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	Active(ctx context.Context) (*domain.Profile, error)
	Import(ctx context.Context, f *importer.ProfileFile) (*domain.Profile, error)
	ImportFile(ctx context.Context, path string) (*domain.Profile, error)
	Export(ctx context.Context, id string) (*importer.ProfileFile, error)
}

// ApplyResult is the outcome of applying a plan to a stored profile.
type ApplyResult struct {
	Profile *domain.Profile
	Plan    planner.ProcessPlan
	Run     *domain.PlanRun
}

type PlanService interface {
	// Calculate normalizes and validates cfg, then plans it.
	Calculate(ctx context.Context, cfg domain.ProcessConfig) (planner.ProcessPlan, error)
	PlanProfile(ctx context.Context, id string) (*domain.Profile, planner.ProcessPlan, error)
	// Apply writes the derived duty tuples and timers back into the
	// profile and records the plan in its history.
	Apply(ctx context.Context, id string) (*ApplyResult, error)
	History(ctx context.Context, id string, limit int) ([]*domain.PlanRun, error)
}
