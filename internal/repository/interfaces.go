package repository

import (
	"context"

	"github.com/alexanderramin/rectplan/internal/domain"
)

type ProfileRepo interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByName(ctx context.Context, name string) (*domain.Profile, error)
	// FindByIDPrefix returns every profile whose ID starts with prefix.
	FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.Profile, error)
	GetActive(ctx context.Context) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	// SetActive clears the active flag everywhere, then sets it on id.
	SetActive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type PlanRunRepo interface {
	Create(ctx context.Context, r *domain.PlanRun) error
	ListByProfile(ctx context.Context, profileID string, limit int) ([]*domain.PlanRun, error)
}
