package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/rectplan/internal/db"
	"github.com/alexanderramin/rectplan/internal/repository"
	"github.com/alexanderramin/rectplan/internal/testutil"
)

type testRepos struct {
	profiles repository.ProfileRepo
	runs     repository.PlanRunRepo
	uow      db.UnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		profiles: repository.NewSQLiteProfileRepo(database),
		runs:     repository.NewSQLitePlanRunRepo(database),
		uow:      testutil.NewTestUoW(database),
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Name
	}
	return out
}
