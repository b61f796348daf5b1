// Package favourites maintains the persisted set of favourite exercises.
// The set is ordered, unique by exercise name, and written back to storage
// after every mutation.
package favourites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/zenloop/zenloop/internal/client/models"
	"github.com/zenloop/zenloop/internal/client/storage"
)

// StorageKey is the blob key the favourites list lives under.
const StorageKey = "favourites"

// Set is the favourites set. The mutex spans each read-modify-write, so
// two rapid toggles of the same exercise cannot undo each other.
type Set struct {
	mu    sync.Mutex
	store storage.Store
	items []models.Exercise
}

// NewSet creates an empty set over the given store. Call Load to pick up
// previously persisted favourites.
func NewSet(store storage.Store) *Set {
	return &Set{store: store}
}

// Load reads the persisted list. A missing or unparseable blob reads as
// an empty set.
func (s *Set) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Get(ctx, StorageKey)
	if err != nil {
		s.items = nil
		return
	}

	var items []models.Exercise
	if err := json.Unmarshal(data, &items); err != nil {
		s.items = nil
		return
	}

	s.items = items
}

// List returns the favourites in insertion order.
func (s *Set) List() []models.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.Exercise(nil), s.items...)
}

// IsFavourite reports membership by exercise name.
func (s *Set) IsFavourite(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.indexOf(name) >= 0
}

// Add appends the exercise unless one with the same name is already
// present. Adding an existing favourite is a no-op.
func (s *Set) Add(ctx context.Context, exercise models.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(exercise.Name) >= 0 {
		return nil
	}

	s.items = append(s.items, exercise)
	return s.persist(ctx)
}

// Remove drops the exercise with the given name. Removing an absent name
// is a no-op, not an error.
func (s *Set) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.Name != name {
			kept = append(kept, item)
		}
	}
	s.items = kept

	return s.persist(ctx)
}

// Toggle removes the exercise when present, appends it otherwise.
func (s *Set) Toggle(ctx context.Context, exercise models.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(exercise.Name); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	} else {
		s.items = append(s.items, exercise)
	}

	return s.persist(ctx)
}

// indexOf returns the position of name, or -1. Caller holds s.mu.
func (s *Set) indexOf(name string) int {
	for i, item := range s.items {
		if item.Name == name {
			return i
		}
	}
	return -1
}

// persist writes the full list. Caller holds s.mu.
func (s *Set) persist(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []models.Exercise{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal favourites: %w", err)
	}

	if err := s.store.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("failed to persist favourites: %w", err)
	}

	return nil
}

// Validate checks the uniqueness invariant on a raw persisted blob.
func Validate(data []byte) error {
	var items []models.Exercise
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("favourites blob is not a JSON array: %w", err)
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.Name]; dup {
			return errors.New("duplicate favourite name: " + item.Name)
		}
		seen[item.Name] = struct{}{}
	}

	return nil
}
