// Package instantiate creates new invoices seeded from saved templates.
package instantiate

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"docugen/internal/assemble"
	"docugen/internal/history"
	"docugen/internal/logger"
	"docugen/internal/repository"
	"docugen/internal/sequence"
	"docugen/pkg/models"
)

// PlaceholderClient is the client name on a freshly instantiated invoice,
// pending user edit.
const PlaceholderClient = "New Client"

// Instantiator turns a template into a brand-new invoice with one initial
// version. The template itself is never touched.
type Instantiator struct {
	seq  *sequence.Allocator
	repo *repository.InvoiceRepository
	log  zerolog.Logger
}

// New creates an instantiator.
func New(seq *sequence.Allocator, repo *repository.InvoiceRepository) *Instantiator {
	return &Instantiator{
		seq:  seq,
		repo: repo,
		log:  logger.WithComponent("instantiate"),
	}
}

// Instantiate allocates the next sequence number, computes a due date
// from the profile's default terms, and persists a new invoice whose
// single version copies the template body. The sequence is committed
// before the invoice is stored: a failed store loses a number, but a
// stored invoice can never have its number re-issued.
func (i *Instantiator) Instantiate(ctx context.Context, tpl models.Template, prof models.UserProfile) (*models.Invoice, error) {
	number, err := i.seq.PeekNext(ctx, prof.InvoiceNumberFormat)
	if err != nil {
		return nil, err
	}
	if err := i.seq.Commit(ctx); err != nil {
		return nil, err
	}

	var dueMillis *int64
	if due, _ := assemble.DueDate(prof.DefaultPaymentTerms, time.Now()); due != nil {
		ms := due.UnixMilli()
		dueMillis = &ms
	}

	inv := history.NewDocument(
		tpl.MarkdownContent,
		tpl.LayoutID,
		fmt.Sprintf("From template: %s", tpl.Name),
		number,
		dueMillis,
		PlaceholderClient,
	)

	if err := i.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	i.log.Info().
		Str("template", tpl.Name).
		Str("invoice_number", number).
		Msg("Invoice instantiated from template")
	return inv, nil
}
