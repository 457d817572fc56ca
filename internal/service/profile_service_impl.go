package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rectplan/internal/db"
	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/importer"
	"github.com/alexanderramin/rectplan/internal/repository"
	"github.com/google/uuid"
)

type profileService struct {
	profiles repository.ProfileRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProfileService(profiles repository.ProfileRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProfileService {
	return &profileService{
		profiles: profiles,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *profileService) Create(ctx context.Context, p *domain.Profile) (err error) {
	defer track(ctx, s.observer, "create-profile", map[string]any{"name": p.Name})(&err)

	if err = validationError(importer.ValidateName(p.Name)); err != nil {
		return err
	}
	if p.Config, err = prepareConfig(p.Config); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.profiles.Create(ctx, p)
}

func (s *profileService) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

func (s *profileService) Resolve(ctx context.Context, ref string) (*domain.Profile, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("profile reference is empty")
	}

	if _, err := uuid.Parse(ref); err == nil {
		return s.profiles.GetByID(ctx, ref)
	}

	p, err := s.profiles.GetByName(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	matches, err := s.profiles.FindByIDPrefix(ctx, strings.ToLower(ref))
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("profile %q: %w", ref, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q matches %d profiles", ErrAmbiguousRef, ref, len(matches))
	}
}

func (s *profileService) List(ctx context.Context) ([]*domain.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *profileService) UpdateConfig(ctx context.Context, id string, cfg domain.ProcessConfig) (p *domain.Profile, err error) {
	defer track(ctx, s.observer, "update-profile", map[string]any{"profile_id": id})(&err)

	if cfg, err = prepareConfig(cfg); err != nil {
		return nil, err
	}
	p, err = s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Config = cfg
	p.AppliedAt = nil
	p.UpdatedAt = time.Now().UTC()
	if err = s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) Rename(ctx context.Context, id, name string) (p *domain.Profile, err error) {
	defer track(ctx, s.observer, "rename-profile", map[string]any{"profile_id": id, "name": name})(&err)

	if err = validationError(importer.ValidateName(name)); err != nil {
		return nil, err
	}
	p, err = s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = name
	p.UpdatedAt = time.Now().UTC()
	if err = s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) Copy(ctx context.Context, id, name string) (cp *domain.Profile, err error) {
	fields := map[string]any{"source_id": id}
	defer track(ctx, s.observer, "copy-profile", fields)(&err)

	src, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = src.Name + " (copy)"
	}
	cp = &domain.Profile{
		Name:   name,
		Notes:  src.Notes,
		Config: src.Config,
	}
	if err = s.Create(ctx, cp); err != nil {
		return nil, err
	}
	fields["profile_id"] = cp.ID
	return cp, nil
}

func (s *profileService) Delete(ctx context.Context, id string) (err error) {
	defer track(ctx, s.observer, "delete-profile", map[string]any{"profile_id": id})(&err)

	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.IsActive {
		return fmt.Errorf("%w: profile %q is active; activate another profile first", repository.ErrConflict, p.Name)
	}
	return s.profiles.Delete(ctx, id)
}

func (s *profileService) Activate(ctx context.Context, id string) (err error) {
	defer track(ctx, s.observer, "activate-profile", map[string]any{"profile_id": id})(&err)

	return s.uow.WithinTx(ctx, "activate profile", func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteProfileRepo(tx).SetActive(ctx, id)
	})
}

func (s *profileService) Active(ctx context.Context) (*domain.Profile, error) {
	return s.profiles.GetActive(ctx)
}

func (s *profileService) Import(ctx context.Context, f *importer.ProfileFile) (p *domain.Profile, err error) {
	defer track(ctx, s.observer, "import-profile", map[string]any{"name": f.Name})(&err)

	if err = validationError(importer.ValidateProfileFile(f)); err != nil {
		return nil, err
	}
	p = &domain.Profile{Name: f.Name, Notes: f.Notes, Config: f.Config}
	if err = s.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) ImportFile(ctx context.Context, path string) (*domain.Profile, error) {
	f, err := importer.LoadProfileFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.Import(ctx, f)
}

func (s *profileService) Export(ctx context.Context, id string) (*importer.ProfileFile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &importer.ProfileFile{
		Version: importer.CurrentVersion,
		Name:    p.Name,
		Notes:   p.Notes,
		Config:  p.Config,
	}, nil
}
