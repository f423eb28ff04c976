// Package archive persists generated figures for later retrieval.
//
// An archive keeps the full serialized figure together with the
// parameters that produced it, so any archived snowflake can be re-fitted
// and re-rendered without regenerating it. Two backends are provided:
// [MemoryStore] for tests and single-process use, and [MongoStore] for
// durable storage shared between server instances.
package archive

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kochwerk/kochwerk/pkg/cache"
	"github.com/kochwerk/kochwerk/pkg/errors"
	"github.com/kochwerk/kochwerk/pkg/figure"
)

// Entry is one archived figure with its identifying metadata.
type Entry struct {
	ID         string        `json:"id" bson:"_id"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
	Name       string        `json:"name,omitempty" bson:"name,omitempty"`
	FigureHash string        `json:"figure_hash" bson:"figure_hash"`
	Figure     figure.Figure `json:"figure" bson:"figure"`
}

// Store is the archive persistence interface.
type Store interface {
	// Put stores an entry, replacing any existing entry with the same ID.
	Put(ctx context.Context, e Entry) error

	// Get retrieves an entry by ID. A missing entry fails with the
	// ENTRY_NOT_FOUND code.
	Get(ctx context.Context, id string) (Entry, error)

	// List returns entries sorted newest first. A non-positive limit
	// returns everything.
	List(ctx context.Context, limit int) ([]Entry, error)

	// Delete removes an entry by ID. A missing entry fails with the
	// ENTRY_NOT_FOUND code.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewEntry builds an archive entry for a figure, assigning a fresh ID,
// the creation time, and the content hash used by the cache layer.
func NewEntry(name string, f figure.Figure) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Name:      name,
		Figure:    f,
	}
	if data, err := figure.Marshal(f); err == nil {
		e.FigureHash = cache.Hash(data)
	}
	return e
}

// validateEntry checks the fields every backend relies on.
func validateEntry(e Entry) error {
	if e.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "entry id must not be empty")
	}
	if err := e.Figure.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFigure, err, "archive entry %s", e.ID)
	}
	return nil
}

// notFound builds the coded error shared by both backends.
func notFound(id string) error {
	return errors.New(errors.ErrCodeEntryNotFound, "archive entry not found: %s", id)
}
