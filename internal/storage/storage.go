// Package storage provides the key-addressed blob store the rest of the
// application persists through. Each entity collection lives under one
// fixed logical key as a serialized JSON value.
package storage

import "context"

// Logical keys, one per entity collection. The names match the original
// docugen data files so existing installations keep working.
const (
	KeyProfile   = "docugen_profile"
	KeyInvoices  = "docugen_invoices"
	KeyClients   = "docugen_clients"
	KeyTemplates = "docugen_templates"
	KeySequence  = "docugen_sequence"
	KeyTheme     = "docugen_theme"
)

// Store is the persistence capability injected into every component that
// needs durable state. Read reports absence via the boolean rather than
// an error so callers can fall back to defaults without error matching.
type Store interface {
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key, value string) error
}
