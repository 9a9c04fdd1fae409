// Package templates persists reusable document templates. Template names
// are unique case-insensitively; templates are never mutated by the
// invoices instantiated from them.
package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"docugen/internal/storage"
	"docugen/internal/validate"
	"docugen/pkg/models"
)

// Store reads and writes the template collection.
type Store struct {
	store storage.Store
}

// NewStore creates a template store over the given storage capability.
func NewStore(store storage.Store) *Store {
	return &Store{store: store}
}

// List returns all templates in stored order.
func (s *Store) List(ctx context.Context) ([]models.Template, error) {
	raw, ok, err := s.store.Read(ctx, storage.KeyTemplates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var tpls []models.Template
	if err := json.Unmarshal([]byte(raw), &tpls); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}
	return tpls, nil
}

// Get returns the template with the given id, if present.
func (s *Store) Get(ctx context.Context, id string) (*models.Template, bool, error) {
	tpls, err := s.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range tpls {
		if tpls[i].ID == id {
			return &tpls[i], true, nil
		}
	}
	return nil, false, nil
}

// Save inserts or replaces a template. The name must be non-empty and
// must not collide case-insensitively with a different template; both
// checks run before anything is persisted.
func (s *Store) Save(ctx context.Context, tpl models.Template) (models.Template, error) {
	if err := validate.Struct(tpl); err != nil {
		return models.Template{}, err
	}
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	if tpl.CreatedAt == 0 {
		tpl.CreatedAt = models.NowMillis()
	}
	if !tpl.LayoutID.Valid() {
		tpl.LayoutID = models.DefaultLayout
	}

	tpls, err := s.List(ctx)
	if err != nil {
		return models.Template{}, err
	}

	for _, existing := range tpls {
		if existing.ID != tpl.ID && strings.EqualFold(existing.Name, tpl.Name) {
			return models.Template{}, validate.NewValidationError("name",
				fmt.Sprintf("a template named %q already exists", existing.Name))
		}
	}

	replaced := false
	for i := range tpls {
		if tpls[i].ID == tpl.ID {
			tpls[i] = tpl
			replaced = true
			break
		}
	}
	if !replaced {
		tpls = append(tpls, tpl)
	}

	if err := s.save(ctx, tpls); err != nil {
		return models.Template{}, err
	}
	return tpl, nil
}

// Delete removes the template with the given id; unknown ids are a
// silent no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	tpls, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := tpls[:0]
	for _, tpl := range tpls {
		if tpl.ID != id {
			kept = append(kept, tpl)
		}
	}
	return s.save(ctx, kept)
}

func (s *Store) save(ctx context.Context, tpls []models.Template) error {
	data, err := json.Marshal(tpls)
	if err != nil {
		return fmt.Errorf("encode templates: %w", err)
	}
	return s.store.Write(ctx, storage.KeyTemplates, string(data))
}
