// Package history maintains the per-document version chain. Every
// successful generation or manual save becomes an immutable version
// prepended to the chain, and the invoice's current projection always
// mirrors the newest version; restoring an older version only previews
// it in the projection until an explicit save commits it.
package history

import (
	"errors"

	"github.com/google/uuid"

	"docugen/pkg/models"
)

// Version summaries for the non-prompt transitions.
const (
	SummaryInitialDraft = "Initial Draft"
	SummaryManualEdit   = "Manual Edit"
)

// promptSummaryLimit caps the prompt text recorded as a version summary.
const promptSummaryLimit = 40

// ErrVersionNotFound is returned by RestoreVersion for an unknown
// version id.
var ErrVersionNotFound = errors.New("version not found")

// NewDocument builds a new invoice aggregate with exactly one version and
// a projection mirroring it.
func NewDocument(body string, layout models.LayoutType, summary, invoiceNumber string, dueDate *int64, clientName string) *models.Invoice {
	if !layout.Valid() {
		layout = models.DefaultLayout
	}
	now := models.NowMillis()
	initial := models.InvoiceVersion{
		ID:              uuid.NewString(),
		CreatedAt:       now,
		MarkdownContent: body,
		LayoutID:        layout,
		Summary:         summary,
	}
	return &models.Invoice{
		ID:              uuid.NewString(),
		InvoiceNumber:   invoiceNumber,
		CreatedAt:       now,
		DueDate:         dueDate,
		ClientName:      clientName,
		Summary:         summary,
		MarkdownContent: body,
		LayoutID:        layout,
		Versions:        []models.InvoiceVersion{initial},
	}
}

// AppendVersion prepends a fresh version and refreshes the projection.
// Older versions are never touched; a pending preview is committed away.
func AppendVersion(inv *models.Invoice, body string, layout models.LayoutType, summary string) {
	if !layout.Valid() {
		layout = inv.LayoutID
	}
	version := models.InvoiceVersion{
		ID:              uuid.NewString(),
		CreatedAt:       models.NowMillis(),
		MarkdownContent: body,
		LayoutID:        layout,
		Summary:         summary,
	}
	inv.Versions = append([]models.InvoiceVersion{version}, inv.Versions...)
	inv.MarkdownContent = body
	inv.LayoutID = layout
	inv.Summary = summary
	inv.Previewing = false
}

// RestoreVersion loads an older version's body and layout into the live
// projection as a preview. The chain itself is untouched: nothing is
// appended, reordered or deleted, and the projection summary stays as it
// was. The preview is lost unless explicitly saved.
func RestoreVersion(inv *models.Invoice, versionID string) error {
	for i := range inv.Versions {
		if inv.Versions[i].ID == versionID {
			inv.MarkdownContent = inv.Versions[i].MarkdownContent
			inv.LayoutID = inv.Versions[i].LayoutID
			inv.Previewing = true
			return nil
		}
	}
	return ErrVersionNotFound
}

// DisplayNumber derives the human-facing "v{N}" number for the version at
// index: the oldest version is v1 and the newest is vN. Never stored.
func DisplayNumber(inv *models.Invoice, index int) int {
	return len(inv.Versions) - index
}

// PromptSummary truncates a re-generation prompt into a version summary.
func PromptSummary(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= promptSummaryLimit {
		return prompt
	}
	return string(runes[:promptSummaryLimit]) + "..."
}
