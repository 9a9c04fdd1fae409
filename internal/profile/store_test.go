package profile

import (
	"context"
	"testing"

	"docugen/internal/storage"
	"docugen/internal/validate"
	"docugen/pkg/models"
)

func TestGetReturnsDefaultsWhenUnset(t *testing.T) {
	store := NewStore(storage.NewMemStore())

	p, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := models.DefaultProfile()
	if p.BusinessName != want.BusinessName || p.Currency != want.Currency {
		t.Errorf("got %+v, want defaults %+v", p, want)
	}
}

func TestSaveThenGetRoundTrips(t *testing.T) {
	store := NewStore(storage.NewMemStore())

	p := models.DefaultProfile()
	p.BusinessName = "Globex"
	p.Email = "ar@globex.example"
	if err := store.Save(context.Background(), p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.BusinessName != "Globex" || got.Email != "ar@globex.example" {
		t.Errorf("got %+v", got)
	}
}

func TestGetMergesDefaultsForMissingFields(t *testing.T) {
	mem := storage.NewMemStore()
	// A profile saved by an older build that knew fewer fields.
	if err := mem.Write(context.Background(), storage.KeyProfile, `{"businessName":"Initech"}`); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := NewStore(mem).Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.BusinessName != "Initech" {
		t.Errorf("stored field lost: %+v", got)
	}
	if got.Currency != models.DefaultProfile().Currency {
		t.Errorf("missing field did not default: %+v", got)
	}
}

func TestSaveRejectsInvalidEmail(t *testing.T) {
	store := NewStore(storage.NewMemStore())

	p := models.DefaultProfile()
	p.Email = "not-an-email"
	err := store.Save(context.Background(), p)
	if !validate.IsValidation(err) {
		t.Fatalf("want validation error, got %v", err)
	}
}
