// Package exercises fetches and filters the exercise catalog.
package exercises

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/zenloop/zenloop/internal/client/models"
)

// DefaultLimit is the number of exercises returned when the caller does
// not ask for a specific amount.
const DefaultLimit = 10

// Catalog is the remote exercise source. *api.CatalogClient implements it.
type Catalog interface {
	Exercises(ctx context.Context, muscle string) ([]models.Exercise, error)
}

// Service fetches exercises, substituting the built-in fallback catalog
// when the remote one is unreachable.
type Service struct {
	catalog Catalog
}

// NewService creates a service over the given catalog client.
func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Fetch returns up to limit exercises, optionally filtered by muscle
// group. The remote result is truncated client-side; the server is not
// trusted to respect a limit. Any transport or server failure falls back
// to the fixed catalog, filtered the same way, so Fetch itself never
// fails. fromFallback reports which source served the result.
func (s *Service) Fetch(ctx context.Context, muscle string, limit int) (list []models.Exercise, fromFallback bool) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	remote, err := s.catalog.Exercises(ctx, muscle)
	if err != nil {
		logrus.Warnf("Catalog unreachable, using fallback data: %v", err)
		return truncate(FallbackByMuscle(muscle), limit), true
	}

	return truncate(remote, limit), false
}

func truncate(list []models.Exercise, limit int) []models.Exercise {
	if len(list) > limit {
		return list[:limit]
	}
	return list
}

// FallbackByMuscle returns the fallback catalog, filtered by muscle when
// one is given (case-insensitive exact match).
func FallbackByMuscle(muscle string) []models.Exercise {
	if muscle == "" {
		return append([]models.Exercise(nil), fallbackCatalog...)
	}

	var matched []models.Exercise
	for _, e := range fallbackCatalog {
		if strings.EqualFold(e.Muscle, muscle) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Search returns the exercises whose name contains query,
// case-insensitively. An empty query matches everything.
func Search(list []models.Exercise, query string) []models.Exercise {
	if query == "" {
		return list
	}

	q := strings.ToLower(query)
	var matched []models.Exercise
	for _, e := range list {
		if strings.Contains(strings.ToLower(e.Name), q) {
			matched = append(matched, e)
		}
	}
	return matched
}

// FilterByDifficulty returns the exercises at the given difficulty level
// (case-insensitive). An empty difficulty matches everything.
func FilterByDifficulty(list []models.Exercise, difficulty string) []models.Exercise {
	if difficulty == "" {
		return list
	}

	var matched []models.Exercise
	for _, e := range list {
		if strings.EqualFold(e.Difficulty, difficulty) {
			matched = append(matched, e)
		}
	}
	return matched
}
