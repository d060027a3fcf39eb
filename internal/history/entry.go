// Package history persists footprint calculations as an append-only,
// chronologically ordered sequence.
//
// Stores expose the two operations the rest of ecotrack needs: Load, which
// never fails (absent or corrupt storage reads as an empty history), and
// Append, which keeps every previous entry and their order.
package history

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/ecotrack/internal/footprint"
)

// Entry is one saved calculation.
type Entry struct {
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"date"`
	Inputs    footprint.Inputs `json:"inputs"`
	Results   footprint.Result `json:"results"`
}

// Store is the persisted history capability.
type Store interface {
	// Load returns every entry in insertion order. Missing or unreadable
	// storage yields an empty slice.
	Load(ctx context.Context) []Entry

	// Append adds e after all existing entries.
	Append(ctx context.Context, e Entry) error
}

//nolint:gochecknoglobals // Shared monotonic entropy source guarded by entropyMu.
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0) //nolint:gosec // Ids need not be unguessable.
)

// NewID returns a lexically sortable unique id for the given instant.
func NewID(now time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}

// NewEntry records a computed result taken at now.
func NewEntry(inputs footprint.Inputs, result footprint.Result, now time.Time) Entry {
	return Entry{
		ID:        NewID(now),
		Timestamp: now.UTC(),
		Inputs:    inputs,
		Results:   result,
	}
}

func copyEntries(in []Entry) []Entry {
	out := make([]Entry, len(in))
	copy(out, in)
	return out
}
