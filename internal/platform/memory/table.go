package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/aesirglt/AdaTech/internal/domain"
	"github.com/aesirglt/AdaTech/internal/fp/option"
	"github.com/aesirglt/AdaTech/internal/store"
)

// Table keeps entities in a map guarded by a RWMutex. List returns rows in
// insertion order.
type Table[E domain.Entity[E]] struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]E
	order []uuid.UUID
}

// NewTable creates an empty Table.
func NewTable[E domain.Entity[E]]() *Table[E] {
	return &Table[E]{
		rows: make(map[uuid.UUID]E),
	}
}

// NewCardTable creates an empty card table.
func NewCardTable() *Table[domain.Card] {
	return NewTable[domain.Card]()
}

// Ensure Table implements store.Table.
var _ store.Table[domain.Card] = (*Table[domain.Card])(nil)

// Get implements store.Table.
func (t *Table[E]) Get(ctx context.Context, id uuid.UUID) (option.Option[E], error) {
	if err := ctx.Err(); err != nil {
		return option.None[E](), err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return option.None[E](), nil
	}
	return option.Some(row), nil
}

// List implements store.Table.
func (t *Table[E]) List(ctx context.Context) ([]E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	all := make([]E, 0, len(t.order))
	for _, id := range t.order {
		all = append(all, t.rows[id])
	}
	return all, nil
}

// Insert implements store.Table.
func (t *Table[E]) Insert(ctx context.Context, entity E) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id := entity.Identity()
	if _, exists := t.rows[id]; exists {
		return store.ErrDuplicate
	}
	t.rows[id] = entity
	t.order = append(t.order, id)
	return nil
}

// Replace implements store.Table.
func (t *Table[E]) Replace(ctx context.Context, entity E) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id := entity.Identity()
	if _, exists := t.rows[id]; !exists {
		return store.ErrNotFound
	}
	t.rows[id] = entity
	return nil
}

// Delete implements store.Table.
func (t *Table[E]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[id]; !exists {
		return store.ErrNotFound
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored rows.
func (t *Table[E]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
