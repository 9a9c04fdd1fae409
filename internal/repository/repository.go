// Package repository is the system of record for invoice aggregates. It
// persists the whole collection as one JSON blob under a fixed storage
// key, newest-created first, and upgrades legacy flat invoices to the
// versioned shape at read time.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"docugen/internal/logger"
	"docugen/internal/storage"
	"docugen/pkg/models"
)

// LegacySummary marks the single version synthesized for an invoice
// persisted before version chains existed.
const LegacySummary = "Initial Version"

// InvoiceRepository reads and writes invoice aggregates through the
// storage capability. Callers must treat each get/compute/update sequence
// as one unit of work; no locking is performed.
type InvoiceRepository struct {
	store storage.Store
	log   zerolog.Logger
}

// NewInvoiceRepository creates a repository over the given store.
func NewInvoiceRepository(store storage.Store) *InvoiceRepository {
	return &InvoiceRepository{
		store: store,
		log:   logger.WithComponent("repository"),
	}
}

// List returns every invoice, newest-created first. Legacy invoices are
// upgraded in the returned copies only; nothing is persisted until the
// next explicit write, so repeated reads re-derive the same upgrade.
func (r *InvoiceRepository) List(ctx context.Context) ([]models.Invoice, error) {
	raw, ok, err := r.store.Read(ctx, storage.KeyInvoices)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var invoices []models.Invoice
	if err := json.Unmarshal([]byte(raw), &invoices); err != nil {
		return nil, fmt.Errorf("decode invoices: %w", err)
	}

	for i := range invoices {
		if migrateLegacy(&invoices[i]) {
			r.log.Debug().
				Str("invoice_id", invoices[i].ID).
				Msg("Upgraded legacy invoice at read time")
		}
	}
	return invoices, nil
}

// Get returns the invoice with the given id, if present.
func (r *InvoiceRepository) Get(ctx context.Context, id string) (*models.Invoice, bool, error) {
	invoices, err := r.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i], true, nil
		}
	}
	return nil, false, nil
}

// Create prepends the invoice to the collection, keeping newest-created
// order.
func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	invoices, err := r.List(ctx)
	if err != nil {
		return err
	}
	invoices = append([]models.Invoice{*inv}, invoices...)
	return r.save(ctx, invoices)
}

// Update replaces the stored invoice with the same id. An unknown id is
// a silent no-op; callers needing confirmation check Get themselves.
func (r *InvoiceRepository) Update(ctx context.Context, inv *models.Invoice) error {
	invoices, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range invoices {
		if invoices[i].ID == inv.ID {
			invoices[i] = *inv
			return r.save(ctx, invoices)
		}
	}
	r.log.Debug().Str("invoice_id", inv.ID).Msg("Update of unknown invoice ignored")
	return nil
}

// Delete removes the whole aggregate, versions included. Unknown ids are
// a silent no-op.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	invoices, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := invoices[:0]
	for _, inv := range invoices {
		if inv.ID != id {
			kept = append(kept, inv)
		}
	}
	return r.save(ctx, kept)
}

func (r *InvoiceRepository) save(ctx context.Context, invoices []models.Invoice) error {
	data, err := json.Marshal(invoices)
	if err != nil {
		return fmt.Errorf("encode invoices: %w", err)
	}
	return r.store.Write(ctx, storage.KeyInvoices, string(data))
}

// migrateLegacy synthesizes the missing version chain for an invoice
// persisted with flat fields only. The synthesized id is content-derived
// so consecutive reads produce structurally identical results.
func migrateLegacy(inv *models.Invoice) bool {
	if len(inv.Versions) > 0 {
		return false
	}
	if !inv.LayoutID.Valid() {
		inv.LayoutID = models.DefaultLayout
	}
	inv.Versions = []models.InvoiceVersion{{
		ID:              legacyVersionID(inv),
		CreatedAt:       inv.CreatedAt,
		MarkdownContent: inv.MarkdownContent,
		LayoutID:        inv.LayoutID,
		Summary:         LegacySummary,
	}}
	return true
}

func legacyVersionID(inv *models.Invoice) string {
	seed := fmt.Sprintf("%s\x00%d\x00%s", inv.ID, inv.CreatedAt, inv.MarkdownContent)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}
