package templates

import (
	"context"
	"testing"

	"docugen/internal/storage"
	"docugen/internal/validate"
	"docugen/pkg/models"
)

func TestSaveAndList(t *testing.T) {
	s := NewStore(storage.NewMemStore())
	ctx := context.Background()

	saved, err := s.Save(ctx, models.Template{Name: "Retainer", MarkdownContent: "# Retainer"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID == "" || saved.CreatedAt == 0 {
		t.Error("Save() did not assign id/timestamp")
	}
	if saved.LayoutID != models.DefaultLayout {
		t.Errorf("LayoutID = %q, want default", saved.LayoutID)
	}

	tpls, err := s.List(ctx)
	if err != nil || len(tpls) != 1 {
		t.Fatalf("List() = %d templates, err %v; want 1, nil", len(tpls), err)
	}
}

func TestSaveRejectsEmptyName(t *testing.T) {
	s := NewStore(storage.NewMemStore())
	ctx := context.Background()

	_, err := s.Save(ctx, models.Template{MarkdownContent: "# x"})
	if !validate.IsValidation(err) {
		t.Errorf("Save(empty name) error = %v, want ValidationError", err)
	}

	if tpls, _ := s.List(ctx); len(tpls) != 0 {
		t.Error("rejected template was persisted")
	}
}

func TestSaveRejectsCaseInsensitiveDuplicate(t *testing.T) {
	s := NewStore(storage.NewMemStore())
	ctx := context.Background()

	if _, err := s.Save(ctx, models.Template{Name: "retainer"}); err != nil {
		t.Fatal(err)
	}

	_, err := s.Save(ctx, models.Template{Name: "Retainer"})
	if !validate.IsValidation(err) {
		t.Errorf("Save(duplicate name) error = %v, want ValidationError", err)
	}

	if tpls, _ := s.List(ctx); len(tpls) != 1 {
		t.Error("duplicate was persisted")
	}
}

func TestSaveSameIDKeepsName(t *testing.T) {
	s := NewStore(storage.NewMemStore())
	ctx := context.Background()

	saved, err := s.Save(ctx, models.Template{Name: "Retainer", MarkdownContent: "v1"})
	if err != nil {
		t.Fatal(err)
	}

	saved.MarkdownContent = "v2"
	if _, err := s.Save(ctx, saved); err != nil {
		t.Errorf("re-saving a template under its own name failed: %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := NewStore(storage.NewMemStore())
	ctx := context.Background()

	saved, err := s.Save(ctx, models.Template{Name: "Retainer"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, saved.ID); ok {
		t.Error("template still present after delete")
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
}
