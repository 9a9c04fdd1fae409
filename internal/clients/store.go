// Package clients persists the client roster. Clients live independently
// of invoices: an invoice only ever records a client's name by value, so
// deleting a client never touches past documents.
package clients

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"docugen/internal/storage"
	"docugen/internal/validate"
	"docugen/pkg/models"
)

// Store reads and writes the client collection.
type Store struct {
	store storage.Store
}

// NewStore creates a client store over the given storage capability.
func NewStore(store storage.Store) *Store {
	return &Store{store: store}
}

// List returns all clients in stored order.
func (s *Store) List(ctx context.Context) ([]models.Client, error) {
	raw, ok, err := s.store.Read(ctx, storage.KeyClients)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var clients []models.Client
	if err := json.Unmarshal([]byte(raw), &clients); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	return clients, nil
}

// Get returns the client with the given id, if present.
func (s *Store) Get(ctx context.Context, id string) (*models.Client, bool, error) {
	clients, err := s.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], true, nil
		}
	}
	return nil, false, nil
}

// Save inserts a new client or replaces an existing one by id. An empty
// name is rejected before anything is persisted.
func (s *Store) Save(ctx context.Context, client models.Client) (models.Client, error) {
	if err := validate.Struct(client); err != nil {
		return models.Client{}, err
	}
	if client.ID == "" {
		client.ID = uuid.NewString()
	}

	clients, err := s.List(ctx)
	if err != nil {
		return models.Client{}, err
	}

	replaced := false
	for i := range clients {
		if clients[i].ID == client.ID {
			clients[i] = client
			replaced = true
			break
		}
	}
	if !replaced {
		clients = append(clients, client)
	}

	if err := s.save(ctx, clients); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

// Delete removes the client with the given id; unknown ids are a silent
// no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	clients, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := clients[:0]
	for _, c := range clients {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return s.save(ctx, kept)
}

func (s *Store) save(ctx context.Context, clients []models.Client) error {
	data, err := json.Marshal(clients)
	if err != nil {
		return fmt.Errorf("encode clients: %w", err)
	}
	return s.store.Write(ctx, storage.KeyClients, string(data))
}
