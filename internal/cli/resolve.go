package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/alexanderramin/rectplan/internal/repository"
)

// resolveProfile finds a profile by UUID, unique ID prefix or name. An empty
// reference selects the active profile.
func resolveProfile(ctx context.Context, app *App, ref string) (*domain.Profile, error) {
	if ref == "" {
		p, err := app.Profiles.Active(ctx)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("no active profile; pass a profile ID or run: rectplan profile activate ID")
		}
		return p, err
	}
	p, err := app.Profiles.Resolve(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("profile not found: %q", ref)
	}
	return p, err
}

func profileRef(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
