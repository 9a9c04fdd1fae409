package history

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"docugen/pkg/models"
)

func newTestDocument() *models.Invoice {
	return NewDocument("# INVOICE INV-0001", models.LayoutModern, SummaryInitialDraft, "INV-0001", nil, "Globex Corp")
}

func assertProjectionMirrorsHead(t *testing.T, inv *models.Invoice) {
	t.Helper()
	head := inv.Versions[0]
	if inv.MarkdownContent != head.MarkdownContent ||
		inv.LayoutID != head.LayoutID ||
		inv.Summary != head.Summary {
		t.Errorf("projection (%q, %q, %q) does not mirror head (%q, %q, %q)",
			inv.MarkdownContent, inv.LayoutID, inv.Summary,
			head.MarkdownContent, head.LayoutID, head.Summary)
	}
}

func TestNewDocument(t *testing.T) {
	inv := newTestDocument()

	if len(inv.Versions) != 1 {
		t.Fatalf("len(Versions) = %d, want 1", len(inv.Versions))
	}
	if inv.ID == "" || inv.Versions[0].ID == "" {
		t.Error("missing generated ids")
	}
	if inv.ClientName != "Globex Corp" {
		t.Errorf("ClientName = %q, want %q", inv.ClientName, "Globex Corp")
	}
	assertProjectionMirrorsHead(t, inv)
}

func TestAppendVersionMonotonicGrowth(t *testing.T) {
	inv := newTestDocument()

	const saves = 5
	for i := 0; i < saves; i++ {
		AppendVersion(inv, fmt.Sprintf("body %d", i), models.LayoutClean, fmt.Sprintf("edit %d", i))
		assertProjectionMirrorsHead(t, inv)
	}

	if len(inv.Versions) != saves+1 {
		t.Errorf("len(Versions) = %d, want %d", len(inv.Versions), saves+1)
	}
	if inv.Versions[0].MarkdownContent != "body 4" {
		t.Errorf("head = %q, want the most recently appended version", inv.Versions[0].MarkdownContent)
	}
	if oldest := inv.Versions[len(inv.Versions)-1]; oldest.Summary != SummaryInitialDraft {
		t.Errorf("oldest version summary = %q, want %q", oldest.Summary, SummaryInitialDraft)
	}
}

func TestAppendVersionNeverMutatesOlderVersions(t *testing.T) {
	inv := newTestDocument()
	original := inv.Versions[0]

	AppendVersion(inv, "new body", models.LayoutBold, SummaryManualEdit)

	if inv.Versions[1] != original {
		t.Error("appending mutated the previous head version")
	}
}

func TestRestoreVersionIsPreviewOnly(t *testing.T) {
	inv := newTestDocument()
	AppendVersion(inv, "second body", models.LayoutBold, "second")
	AppendVersion(inv, "third body", models.LayoutClean, "third")

	oldest := inv.Versions[2]
	before := make([]models.InvoiceVersion, len(inv.Versions))
	copy(before, inv.Versions)

	for i := 0; i < 3; i++ {
		if err := RestoreVersion(inv, oldest.ID); err != nil {
			t.Fatalf("RestoreVersion() error = %v", err)
		}
	}

	if len(inv.Versions) != len(before) {
		t.Errorf("len(Versions) changed: %d -> %d", len(before), len(inv.Versions))
	}
	for i := range before {
		if inv.Versions[i] != before[i] {
			t.Errorf("version %d changed during restore", i)
		}
	}
	if inv.MarkdownContent != oldest.MarkdownContent || inv.LayoutID != oldest.LayoutID {
		t.Error("projection body/layout do not show the restored version")
	}
	if inv.Summary != "third" {
		t.Errorf("projection summary = %q, want untouched %q", inv.Summary, "third")
	}
	if !inv.Previewing {
		t.Error("Previewing flag not set")
	}
}

func TestRestoreThenSaveCommitsPreview(t *testing.T) {
	inv := newTestDocument()
	AppendVersion(inv, "second body", models.LayoutBold, "second")

	oldest := inv.Versions[1]
	if err := RestoreVersion(inv, oldest.ID); err != nil {
		t.Fatalf("RestoreVersion() error = %v", err)
	}

	AppendVersion(inv, inv.MarkdownContent, inv.LayoutID, "Restored v1")

	if inv.Previewing {
		t.Error("Previewing still set after save")
	}
	if len(inv.Versions) != 3 {
		t.Errorf("len(Versions) = %d, want 3", len(inv.Versions))
	}
	assertProjectionMirrorsHead(t, inv)
	if inv.MarkdownContent != oldest.MarkdownContent {
		t.Error("saved projection does not carry the restored body")
	}
}

func TestRestoreVersionUnknownID(t *testing.T) {
	inv := newTestDocument()
	if err := RestoreVersion(inv, "nope"); !errors.Is(err, ErrVersionNotFound) {
		t.Errorf("RestoreVersion(unknown) error = %v, want ErrVersionNotFound", err)
	}
	if inv.Previewing {
		t.Error("failed restore set the preview flag")
	}
}

func TestDisplayNumber(t *testing.T) {
	inv := newTestDocument()
	AppendVersion(inv, "v2 body", models.LayoutModern, "second")
	AppendVersion(inv, "v3 body", models.LayoutModern, "third")

	// [v3(newest), v2, v1(oldest)]
	tests := []struct {
		index int
		want  int
	}{
		{index: 0, want: 3},
		{index: 1, want: 2},
		{index: 2, want: 1},
	}
	for _, tt := range tests {
		if got := DisplayNumber(inv, tt.index); got != tt.want {
			t.Errorf("DisplayNumber(index %d) = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestPromptSummary(t *testing.T) {
	short := "add a discount"
	if got := PromptSummary(short); got != short {
		t.Errorf("PromptSummary(short) = %q, want unchanged", got)
	}

	long := strings.Repeat("x", 50)
	got := PromptSummary(long)
	if got != strings.Repeat("x", 40)+"..." {
		t.Errorf("PromptSummary(long) = %q, want 40 runes plus ellipsis", got)
	}
}
