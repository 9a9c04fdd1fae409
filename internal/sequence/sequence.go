// Package sequence issues monotonically increasing invoice numbers from a
// persisted counter.
//
// Allocation is split in two so failed generations leave no gaps: callers
// PeekNext to obtain the number embedded in a generation request, and
// only Commit after the generation succeeded. The read-then-increment is
// not safe against concurrent writers; the app assumes a single active
// writer per data store.
package sequence

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"docugen/internal/logger"
	"docugen/internal/storage"
)

// DefaultFormat renders the counter as INV-0001, INV-0002, ...
const DefaultFormat = "INV-%04d"

// Allocator reads and advances the persisted invoice counter.
type Allocator struct {
	store storage.Store
	log   zerolog.Logger
}

// NewAllocator creates an allocator over the given store.
func NewAllocator(store storage.Store) *Allocator {
	return &Allocator{
		store: store,
		log:   logger.WithComponent("sequence"),
	}
}

// PeekNext returns the next invoice number rendered through format
// (DefaultFormat when empty) without mutating the counter. Calling it
// repeatedly without an intervening Commit yields the same number.
func (a *Allocator) PeekNext(ctx context.Context, format string) (string, error) {
	if format == "" {
		format = DefaultFormat
	}
	n, err := a.current(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(format, n), nil
}

// Commit advances the persisted counter by exactly one.
func (a *Allocator) Commit(ctx context.Context) error {
	n, err := a.current(ctx)
	if err != nil {
		return err
	}
	if err := a.store.Write(ctx, storage.KeySequence, strconv.Itoa(n+1)); err != nil {
		return fmt.Errorf("commit sequence: %w", err)
	}
	a.log.Debug().Int("next", n+1).Msg("Invoice sequence committed")
	return nil
}

// current reads the counter, defaulting to 1 when absent. A corrupt
// value resets to 1 with a warning rather than blocking invoicing.
func (a *Allocator) current(ctx context.Context) (int, error) {
	raw, ok, err := a.store.Read(ctx, storage.KeySequence)
	if err != nil {
		return 0, fmt.Errorf("read sequence: %w", err)
	}
	if !ok {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		a.log.Warn().Str("value", raw).Msg("Invalid sequence counter, resetting to 1")
		return 1, nil
	}
	return n, nil
}
