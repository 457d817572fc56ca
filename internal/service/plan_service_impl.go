package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/rectplan/internal/db"
	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/planner"
	"github.com/alexanderramin/rectplan/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	profiles repository.ProfileRepo
	runs     repository.PlanRunRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPlanService(profiles repository.ProfileRepo, runs repository.PlanRunRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PlanService {
	return &planService{
		profiles: profiles,
		runs:     runs,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Calculate(ctx context.Context, cfg domain.ProcessConfig) (plan planner.ProcessPlan, err error) {
	fields := map[string]any{"volume_l": cfg.VolumeL, "strength_vol": cfg.StrengthVol}
	defer track(ctx, s.observer, "calculate", fields)(&err)

	cfg, err = prepareConfig(cfg)
	if err != nil {
		return planner.ProcessPlan{}, err
	}
	plan = planner.Plan(cfg)
	fields["total_sec"] = plan.Analytics.Timers.TotalProcess
	fields["warnings"] = len(plan.Warnings)
	return plan, nil
}

func (s *planService) PlanProfile(ctx context.Context, id string) (*domain.Profile, planner.ProcessPlan, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, planner.ProcessPlan{}, err
	}
	plan, err := s.Calculate(ctx, p.Config)
	if err != nil {
		return nil, planner.ProcessPlan{}, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return p, plan, nil
}

func (s *planService) Apply(ctx context.Context, id string) (res *ApplyResult, err error) {
	fields := map[string]any{"profile_id": id}
	defer track(ctx, s.observer, "apply-plan", fields)(&err)

	err = s.uow.WithinTx(ctx, "apply plan", func(ctx context.Context, tx db.DBTX) error {
		txProfiles := repository.NewSQLiteProfileRepo(tx)
		txRuns := repository.NewSQLitePlanRunRepo(tx)

		p, err := txProfiles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		cfg, err := prepareConfig(p.Config)
		if err != nil {
			return err
		}
		plan := planner.Plan(cfg)

		now := time.Now().UTC()
		p.Config = plan.Config
		p.AppliedAt = &now
		p.UpdatedAt = now
		if err := txProfiles.Update(ctx, p); err != nil {
			return err
		}

		encoded, err := json.Marshal(plan)
		if err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}
		run := &domain.PlanRun{
			ID:               uuid.New().String(),
			ProfileID:        p.ID,
			TotalDurationSec: plan.TotalDurationSec,
			HeartsMl:         plan.Hearts.VolumeMl,
			Plan:             encoded,
			CreatedAt:        now,
		}
		if err := txRuns.Create(ctx, run); err != nil {
			return err
		}

		fields["run_id"] = run.ID
		res = &ApplyResult{Profile: p, Plan: plan, Run: run}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *planService) History(ctx context.Context, id string, limit int) ([]*domain.PlanRun, error) {
	if _, err := s.profiles.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.runs.ListByProfile(ctx, id, limit)
}
