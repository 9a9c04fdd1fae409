// Package profile persists the singleton business profile.
package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"docugen/internal/storage"
	"docugen/internal/validate"
	"docugen/pkg/models"
)

// Store reads and overwrites the installation's business profile. The
// profile is never deleted.
type Store struct {
	store storage.Store
}

// NewStore creates a profile store over the given storage capability.
func NewStore(store storage.Store) *Store {
	return &Store{store: store}
}

// Get returns the saved profile with defaults merged in: stored fields
// are decoded over the default profile, so fields added after the profile
// was last saved keep their default values.
func (s *Store) Get(ctx context.Context) (models.UserProfile, error) {
	p := models.DefaultProfile()
	raw, ok, err := s.store.Read(ctx, storage.KeyProfile)
	if err != nil {
		return p, err
	}
	if !ok {
		return p, nil
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return models.DefaultProfile(), fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// Save overwrites the stored profile.
func (s *Store) Save(ctx context.Context, p models.UserProfile) error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return s.store.Write(ctx, storage.KeyProfile, string(data))
}
