package commands

import (
	"context"
	"fmt"

	"github.com/zenloop/zenloop/internal/client/config"
	"github.com/zenloop/zenloop/internal/client/exercises"
	"github.com/zenloop/zenloop/internal/client/models"
	"github.com/zenloop/zenloop/internal/client/output"
	"github.com/zenloop/zenloop/internal/client/session"
)

// requireAuth checks if a session is loaded and returns an error if not.
func requireAuth(mgr *session.Manager) (models.User, error) {
	user, ok := mgr.Current()
	if !ok {
		return models.User{}, fmt.Errorf("not logged in. Please run 'zenloop auth login' first")
	}

	return user, nil
}

// newFormatter builds the formatter for the configured output format.
func newFormatter(cfg *config.Config) (output.Formatter, error) {
	return output.NewFormatter(cfg.Format)
}

// lookupExercise resolves an exercise name against the catalog (falling
// back to the built-in list when the catalog is down). The match is exact
// and case-sensitive, same as favourites membership.
func lookupExercise(ctx context.Context, svc *exercises.Service, muscle, name string) (models.Exercise, error) {
	list, _ := svc.Fetch(ctx, muscle, exercises.DefaultLimit)
	for _, e := range list {
		if e.Name == name {
			return e, nil
		}
	}

	for _, e := range exercises.FallbackByMuscle(muscle) {
		if e.Name == name {
			return e, nil
		}
	}

	return models.Exercise{}, fmt.Errorf("exercise %q not found in catalog", name)
}
