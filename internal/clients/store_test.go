package clients

import (
	"context"
	"testing"

	"docugen/internal/storage"
	"docugen/internal/validate"
	"docugen/pkg/models"
)

func TestSaveAssignsID(t *testing.T) {
	s := NewStore(storage.NewMemStore())
	ctx := context.Background()

	saved, err := s.Save(ctx, models.Client{Name: "Globex Corp", Email: "ap@globex.test"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID == "" {
		t.Error("Save() did not assign an id")
	}

	got, ok, err := s.Get(ctx, saved.ID)
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v", ok, err)
	}
	if got.Name != "Globex Corp" {
		t.Errorf("Name = %q, want %q", got.Name, "Globex Corp")
	}
}

func TestSaveValidation(t *testing.T) {
	s := NewStore(storage.NewMemStore())
	ctx := context.Background()

	tests := []struct {
		name   string
		client models.Client
	}{
		{name: "empty name", client: models.Client{Email: "a@b.test"}},
		{name: "bad email", client: models.Client{Name: "X", Email: "not-an-email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Save(ctx, tt.client); !validate.IsValidation(err) {
				t.Errorf("Save() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestSaveReplacesByID(t *testing.T) {
	s := NewStore(storage.NewMemStore())
	ctx := context.Background()

	saved, err := s.Save(ctx, models.Client{Name: "Globex Corp"})
	if err != nil {
		t.Fatal(err)
	}
	saved.Address = "1 Globex Plaza"
	if _, err := s.Save(ctx, saved); err != nil {
		t.Fatal(err)
	}

	all, _ := s.List(ctx)
	if len(all) != 1 || all[0].Address != "1 Globex Plaza" {
		t.Errorf("List() = %+v, want single updated client", all)
	}
}

func TestDeleteIsSilentForUnknown(t *testing.T) {
	s := NewStore(storage.NewMemStore())
	ctx := context.Background()

	saved, err := s.Save(ctx, models.Client{Name: "Globex Corp"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
	if all, _ := s.List(ctx); len(all) != 0 {
		t.Error("client still present after delete")
	}
}
