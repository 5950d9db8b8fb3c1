package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/aesirglt/AdaTech/internal/fp/option"
)

// Table is the storage engine for a single entity type. Implementations do
// no business validation; they persist whatever they are given and report
// infrastructure problems as errors.
type Table[E any] interface {
	// Get returns the row with the given id, or None when there is no such row.
	Get(ctx context.Context, id uuid.UUID) (option.Option[E], error)

	// List returns every row. It returns an empty slice for an empty table.
	List(ctx context.Context) ([]E, error)

	// Insert stores a new row. Returns ErrDuplicate if the id is taken.
	Insert(ctx context.Context, entity E) error

	// Replace overwrites every column of the row identified by the entity's id.
	// Returns ErrNotFound if the row does not exist.
	Replace(ctx context.Context, entity E) error

	// Delete removes the row with the given id.
	// Returns ErrNotFound if the row does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
