// Package users implements the local credential store: the registry of
// accounts registered on this device, persisted as a single JSON blob.
// Stored records keep their plaintext password; that matches the storage
// format the rest of the client expects and is a known limitation.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zenloop/zenloop/internal/client/apperr"
	"github.com/zenloop/zenloop/internal/client/models"
	"github.com/zenloop/zenloop/internal/client/storage"
)

// StorageKey is the blob key the credential store lives under.
const StorageKey = "registered_users"

// Store reads and writes the registered-user blob. Every operation loads
// the full list; n stays small enough that the linear scans never matter.
type Store struct {
	store storage.Store
}

// NewStore creates a credential store over the given key-value store.
func NewStore(store storage.Store) *Store {
	return &Store{store: store}
}

// All returns every registered user. A store that was never written reads
// as empty.
func (s *Store) All(ctx context.Context) ([]models.User, error) {
	data, err := s.store.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load registered users: %w", err)
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse registered users: %w", err)
	}

	return users, nil
}

// Register appends a new record unless the username or email collides with
// an existing one (case-sensitive on both). The returned record carries
// the assigned id.
func (s *Store) Register(ctx context.Context, user models.User) (models.User, error) {
	existing, err := s.All(ctx)
	if err != nil {
		return models.User{}, err
	}

	for _, u := range existing {
		if u.Username == user.Username || u.Email == user.Email {
			return models.User{}, apperr.New(apperr.CodeDuplicateUser, "username or email already exists")
		}
	}

	// Monotonic id: max existing id + 1. Records are never deleted today,
	// but this stays unique if they ever are.
	maxID := 0
	for _, u := range existing {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	user.ID = maxID + 1

	if err := s.save(ctx, append(existing, user)); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// FindByCredentials scans for a record whose username and password both
// match exactly. Email never matches here.
func (s *Store) FindByCredentials(ctx context.Context, username, password string) (models.User, bool, error) {
	users, err := s.All(ctx)
	if err != nil {
		return models.User{}, false, err
	}

	for _, u := range users {
		if u.Username == username && u.Password == password {
			return u, true, nil
		}
	}

	return models.User{}, false, nil
}

// FindByID scans for a record with the given id.
func (s *Store) FindByID(ctx context.Context, id int) (models.User, bool, error) {
	users, err := s.All(ctx)
	if err != nil {
		return models.User{}, false, err
	}

	for _, u := range users {
		if u.ID == id {
			return u, true, nil
		}
	}

	return models.User{}, false, nil
}

// Update replaces the record matching user.ID in place and rewrites the
// blob. It reports whether a record matched.
func (s *Store) Update(ctx context.Context, user models.User) (bool, error) {
	users, err := s.All(ctx)
	if err != nil {
		return false, err
	}

	for i, u := range users {
		if u.ID == user.ID {
			users[i] = user
			if err := s.save(ctx, users); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	return false, nil
}

func (s *Store) save(ctx context.Context, users []models.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to marshal registered users: %w", err)
	}

	if err := s.store.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("failed to persist registered users: %w", err)
	}

	return nil
}
