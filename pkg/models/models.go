// Package models defines the domain types shared across the application.
//
// The JSON encoding intentionally keeps the camelCase keys and
// epoch-millisecond timestamps of the original docugen data files, so
// previously persisted profiles, invoices, clients and templates load
// without any conversion step.
package models

import "time"

// LayoutType names one of the built-in document layouts.
type LayoutType string

const (
	LayoutClean   LayoutType = "clean"
	LayoutModern  LayoutType = "modern"
	LayoutClassic LayoutType = "classic"
	LayoutBold    LayoutType = "bold"
)

// DefaultLayout is used when no layout is recorded for a document.
const DefaultLayout = LayoutModern

// Valid reports whether l is one of the known layouts.
func (l LayoutType) Valid() bool {
	switch l {
	case LayoutClean, LayoutModern, LayoutClassic, LayoutBold:
		return true
	}
	return false
}

// Layouts lists every known layout in display order.
func Layouts() []LayoutType {
	return []LayoutType{LayoutClean, LayoutModern, LayoutClassic, LayoutBold}
}

// NowMillis returns the current time as epoch milliseconds, the timestamp
// unit used throughout the persisted data.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// UserProfile is the sender identity embedded in every generation context
// and rendered document. There is exactly one per installation; it is only
// ever overwritten, never deleted.
type UserProfile struct {
	BusinessName         string `json:"businessName"`
	OwnerName            string `json:"ownerName"`
	Address              string `json:"address"`
	Email                string `json:"email" validate:"omitempty,email"`
	Phone                string `json:"phone"`
	WebsiteURL           string `json:"websiteUrl,omitempty"`
	LogoURL              string `json:"logoUrl"`
	LogoBackgroundColor  string `json:"logoBackgroundColor,omitempty"`
	LogoTextColor        string `json:"logoTextColor,omitempty"`
	PaymentDetails       string `json:"paymentDetails"`
	DefaultPaymentTerms  string `json:"defaultPaymentTerms,omitempty"`
	DefaultClientAddress string `json:"defaultClientAddress,omitempty"`
	Currency             string `json:"currency"`

	// InvoiceNumberFormat is an optional fmt-style hint for rendering the
	// sequence counter, e.g. "ACME-%05d". Empty means the built-in
	// "INV-%04d".
	InvoiceNumberFormat string `json:"invoiceNumberFormat,omitempty"`
}

// DefaultProfile returns the profile used before the user has saved one.
// Stored profiles are decoded over this value so newly introduced fields
// pick up their defaults.
func DefaultProfile() UserProfile {
	return UserProfile{
		BusinessName:        "Acme Corp",
		OwnerName:           "John Doe",
		Address:             "123 Innovation Dr, Tech City, CA",
		Email:               "billing@acmecorp.com",
		Phone:               "+1 (555) 0123",
		WebsiteURL:          "www.acmecorp.com",
		LogoURL:             "",
		LogoBackgroundColor: "#2563eb",
		LogoTextColor:       "#ffffff",
		PaymentDetails:      "Bank: USBank\nAccount: 123456789\nRouting: 987654321",
		DefaultPaymentTerms: "Net 30",
		Currency:            "USD",
	}
}

// Client is a billing party. Clients are referenced by denormalized name
// at generation time only; deleting a client never touches past invoices.
type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`

	// Notes are private and never surfaced inside a generated document.
	Notes string `json:"notes,omitempty"`
}

// InvoiceVersion is an immutable snapshot of a document at one point in
// its history. Once created it is never mutated or individually deleted.
type InvoiceVersion struct {
	ID              string     `json:"id"`
	CreatedAt       int64      `json:"createdAt"`
	MarkdownContent string     `json:"markdownContent"`
	LayoutID        LayoutType `json:"layoutId"`
	Summary         string     `json:"summary"`
}

// Invoice is the mutable aggregate: the current projection of the latest
// content plus the full version history, newest first.
//
// Invariant: Versions is never empty once the invoice exists, and
// MarkdownContent/LayoutID/Summary mirror Versions[0] except while a
// restore preview is active (Previewing == true).
type Invoice struct {
	ID            string `json:"id"`
	InvoiceNumber string `json:"invoiceNumber"`
	CreatedAt     int64  `json:"createdAt"`
	DueDate       *int64 `json:"dueDate,omitempty"`
	ClientName    string `json:"clientName"`

	// Projection of Versions[0].
	Summary         string     `json:"summary"`
	MarkdownContent string     `json:"markdownContent"`
	LayoutID        LayoutType `json:"layoutId"`

	Versions []InvoiceVersion `json:"versions"`

	// Previewing marks a restored-but-unsaved working state. It is never
	// persisted; an explicit save clears it by appending a new version.
	Previewing bool `json:"-"`
}

// Head returns the newest version. It panics on an empty chain, which is
// only possible for an aggregate that bypassed the history package.
func (inv *Invoice) Head() *InvoiceVersion {
	return &inv.Versions[0]
}

// Template is a reusable document seed with an independent lifecycle.
// Template names are unique case-insensitively.
type Template struct {
	ID              string     `json:"id"`
	Name            string     `json:"name" validate:"required"`
	Description     string     `json:"description,omitempty"`
	MarkdownContent string     `json:"markdownContent"`
	LayoutID        LayoutType `json:"layoutId"`
	CreatedAt       int64      `json:"createdAt"`
}
