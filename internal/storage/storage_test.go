package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	if _, ok, err := store.Read(ctx, KeyInvoices); err != nil || ok {
		t.Fatalf("Read(absent) = ok %v, err %v; want absent, nil", ok, err)
	}

	if err := store.Write(ctx, KeyInvoices, `[{"id":"a"}]`); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	value, ok, err := store.Read(ctx, KeyInvoices)
	if err != nil || !ok {
		t.Fatalf("Read() = ok %v, err %v; want present, nil", ok, err)
	}
	if value != `[{"id":"a"}]` {
		t.Errorf("Read() = %q, want stored value", value)
	}

	// Keys are independent.
	if _, ok, _ := store.Read(ctx, KeyClients); ok {
		t.Error("Read(other key) reported present")
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	if err := store.Write(ctx, KeySequence, "1"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := store.Write(ctx, KeySequence, "2"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	value, _, _ := store.Read(ctx, KeySequence)
	if value != "2" {
		t.Errorf("Read() after overwrite = %q, want %q", value, "2")
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	store := NewRedisStoreWithClient(client)
	ctx := context.Background()

	if _, ok, err := store.Read(ctx, KeyProfile); err != nil || ok {
		t.Fatalf("Read(absent) = ok %v, err %v; want absent, nil", ok, err)
	}

	if err := store.Write(ctx, KeyProfile, `{"businessName":"Acme"}`); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	value, ok, err := store.Read(ctx, KeyProfile)
	if err != nil || !ok {
		t.Fatalf("Read() = ok %v, err %v; want present, nil", ok, err)
	}
	if value != `{"businessName":"Acme"}` {
		t.Errorf("Read() = %q, want stored value", value)
	}

	// Values are namespaced under the docugen prefix.
	if !srv.Exists("docugen:" + KeyProfile) {
		t.Error("expected prefixed key in redis")
	}
}
