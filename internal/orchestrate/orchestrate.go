// Package orchestrate ties user actions to the core pipeline: context
// assembly, the generation gateway, the version chain and the repository,
// in that order. It is the boundary where every remote failure surfaces
// as a single GenerationError and where destructive actions arrive only
// after the caller has confirmed them.
package orchestrate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"docugen/internal/assemble"
	"docugen/internal/clients"
	"docugen/internal/generate"
	"docugen/internal/history"
	"docugen/internal/logger"
	"docugen/internal/profile"
	"docugen/internal/repository"
	"docugen/internal/sequence"
	"docugen/internal/validate"
	"docugen/pkg/models"
)

// ErrInvoiceNotFound is returned when an operation targets an invoice id
// that does not exist. Plain repository updates/deletes stay silent; the
// orchestrator reports it because the user named the document explicitly.
var ErrInvoiceNotFound = errors.New("invoice not found")

// ErrClientNotFound is returned when a generation pins a client id that
// does not exist. Pinning must either take effect or fail loudly; it is
// never degraded to the model's own extraction.
var ErrClientNotFound = errors.New("client not found")

// Generator is the drafting capability the orchestrator depends on.
type Generator interface {
	Generate(ctx context.Context, bundle assemble.Bundle) (generate.Result, error)
}

// Orchestrator wires the core components together. All operations are
// sequential; one generation may be in flight at a time.
type Orchestrator struct {
	seq      *sequence.Allocator
	invoices *repository.InvoiceRepository
	clients  *clients.Store
	profiles *profile.Store
	gateway  Generator
	log      zerolog.Logger
}

// New creates an orchestrator with explicit dependencies.
func New(
	seq *sequence.Allocator,
	invoices *repository.InvoiceRepository,
	clientStore *clients.Store,
	profiles *profile.Store,
	gateway Generator,
) *Orchestrator {
	return &Orchestrator{
		seq:      seq,
		invoices: invoices,
		clients:  clientStore,
		profiles: profiles,
		gateway:  gateway,
		log:      logger.WithComponent("orchestrate"),
	}
}

// GenerateNew drafts a brand-new invoice from a prompt. The sequence
// number is peeked before the remote call and committed only after it
// succeeds, so a failed generation leaves no number gap.
func (o *Orchestrator) GenerateNew(ctx context.Context, prompt, clientID string, layout models.LayoutType) (*models.Invoice, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, validate.NewValidationError("prompt", "is required")
	}

	prof, err := o.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}

	var selected *models.Client
	if clientID != "" {
		var ok bool
		selected, ok, err = o.clients.Get(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrClientNotFound
		}
	}

	exemplars, err := o.invoices.List(ctx)
	if err != nil {
		return nil, err
	}

	number, err := o.seq.PeekNext(ctx, prof.InvoiceNumberFormat)
	if err != nil {
		return nil, err
	}

	bundle := assemble.BuildBundle(assemble.Input{
		Prompt:         prompt,
		Profile:        prof,
		History:        exemplars,
		SelectedClient: selected,
		InvoiceNumber:  number,
		Now:            time.Now(),
	})

	result, err := o.gateway.Generate(ctx, bundle)
	if err != nil {
		return nil, err
	}

	if err := o.seq.Commit(ctx); err != nil {
		return nil, err
	}

	var dueMillis *int64
	if bundle.DueDate != nil {
		ms := bundle.DueDate.UnixMilli()
		dueMillis = &ms
	}

	inv := history.NewDocument(result.Markdown, layout, history.SummaryInitialDraft, number, dueMillis, result.ClientName)
	if err := o.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}

	o.log.Info().
		Str("invoice_id", inv.ID).
		Str("invoice_number", number).
		Str("client", inv.ClientName).
		Str("model_summary", result.Summary).
		Msg("New invoice generated")
	return inv, nil
}

// GenerateRevision re-drafts an existing invoice in place. The current
// projection body is the edit base; if the invoice is in a restore
// preview, the previewed body becomes the new base. No client override is
// applied on revisions.
func (o *Orchestrator) GenerateRevision(ctx context.Context, invoiceID, prompt string, layout models.LayoutType) (*models.Invoice, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, validate.NewValidationError("prompt", "is required")
	}

	inv, ok, err := o.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvoiceNotFound
	}

	prof, err := o.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	exemplars, err := o.invoices.List(ctx)
	if err != nil {
		return nil, err
	}

	bundle := assemble.BuildBundle(assemble.Input{
		Prompt:         prompt,
		Profile:        prof,
		History:        exemplars,
		CurrentContent: inv.MarkdownContent,
		InvoiceNumber:  inv.InvoiceNumber,
		Now:            time.Now(),
	})

	result, err := o.gateway.Generate(ctx, bundle)
	if err != nil {
		return nil, err
	}

	if layout == "" {
		layout = inv.LayoutID
	}
	history.AppendVersion(inv, result.Markdown, layout, history.PromptSummary(prompt))

	if err := o.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}

	o.log.Info().
		Str("invoice_id", inv.ID).
		Int("versions", len(inv.Versions)).
		Msg("Invoice revision generated")
	return inv, nil
}

// SaveManualEdit commits a hand-edited body as a new version.
func (o *Orchestrator) SaveManualEdit(ctx context.Context, invoiceID, body string, layout models.LayoutType) (*models.Invoice, error) {
	inv, ok, err := o.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvoiceNotFound
	}

	if layout == "" {
		layout = inv.LayoutID
	}
	history.AppendVersion(inv, body, layout, history.SummaryManualEdit)

	if err := o.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// RestorePreview returns the invoice with an older version loaded into
// its projection. Nothing is persisted; the preview is working state that
// is lost unless SaveRestored commits it.
func (o *Orchestrator) RestorePreview(ctx context.Context, invoiceID, versionID string) (*models.Invoice, error) {
	inv, ok, err := o.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvoiceNotFound
	}
	if err := history.RestoreVersion(inv, versionID); err != nil {
		return nil, err
	}
	return inv, nil
}

// SaveRestored commits a restored version as a new head: the version's
// body and layout are appended as a fresh version recording which display
// number was restored.
func (o *Orchestrator) SaveRestored(ctx context.Context, invoiceID, versionID string) (*models.Invoice, error) {
	inv, ok, err := o.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvoiceNotFound
	}

	restoredDisplay := 0
	for i := range inv.Versions {
		if inv.Versions[i].ID == versionID {
			restoredDisplay = history.DisplayNumber(inv, i)
			break
		}
	}
	if err := history.RestoreVersion(inv, versionID); err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("Restored v%d", restoredDisplay)
	history.AppendVersion(inv, inv.MarkdownContent, inv.LayoutID, summary)

	if err := o.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Delete removes the whole aggregate. Confirmation happens at the caller;
// there is no undo.
func (o *Orchestrator) Delete(ctx context.Context, invoiceID string) error {
	return o.invoices.Delete(ctx, invoiceID)
}
