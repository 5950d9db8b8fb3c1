package store

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aesirglt/AdaTech/internal/domain"
	"github.com/aesirglt/AdaTech/internal/fp/choice"
	"github.com/aesirglt/AdaTech/internal/fp/option"
	"github.com/aesirglt/AdaTech/internal/fp/result"
	"github.com/aesirglt/AdaTech/internal/platform/logger"
)

// InsertOutcome is the validation-or-id outcome of an insert.
type InsertOutcome = choice.Choice[domain.FieldErrors, uuid.UUID]

// UpdateOutcome is the validation-or-success outcome of an update.
type UpdateOutcome = choice.Choice[domain.FieldErrors, result.Done]

// ReadRepository serves lookups for one entity type.
type ReadRepository[E domain.Entity[E]] struct {
	table  Table[E]
	logger *slog.Logger
}

// NewReadRepository creates a ReadRepository over table.
// If logger is nil, a default logger will be used.
func NewReadRepository[E domain.Entity[E]](table Table[E], logger *slog.Logger) *ReadRepository[E] {
	if table == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("table cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadRepository[E]{
		table:  table,
		logger: logger.With(slog.String("component", "read_repository")),
	}
}

// FindByID returns None when no row matches; a missing row is never an error.
func (r *ReadRepository[E]) FindByID(ctx context.Context, id uuid.UUID) (option.Option[E], error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	found, err := r.table.Get(ctx, id)
	if err != nil {
		if IsNotFoundError(err) {
			return option.None[E](), nil
		}
		log.Error("failed to find entity",
			slog.String("error", err.Error()),
			slog.String("id", id.String()))
		return option.None[E](), err
	}

	if found.IsNone() {
		log.Debug("entity not found", slog.String("id", id.String()))
	}
	return found, nil
}

// GetAll returns every entity, or an empty slice when the table is empty.
func (r *ReadRepository[E]) GetAll(ctx context.Context) ([]E, error) {
	all, err := r.table.List(ctx)
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = []E{}
	}
	return all, nil
}

// WriteRepository gates every write on the entity's self-validation.
type WriteRepository[E domain.Entity[E]] struct {
	table  Table[E]
	logger *slog.Logger
	newID  func() uuid.UUID
}

// NewWriteRepository creates a WriteRepository over table.
// If logger is nil, a default logger will be used.
func NewWriteRepository[E domain.Entity[E]](table Table[E], logger *slog.Logger) *WriteRepository[E] {
	if table == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("table cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WriteRepository[E]{
		table:  table,
		logger: logger.With(slog.String("component", "write_repository")),
		newID:  uuid.New,
	}
}

// Insert validates and stores a new entity, returning its id. An absent entity
// or a failed validation is reported in the Choice and nothing is written.
// The returned error is reserved for storage failures.
func (w *WriteRepository[E]) Insert(ctx context.Context, maybe option.Option[E]) (InsertOutcome, error) {
	return option.MatchE(maybe,
		func(entity E) (InsertOutcome, error) {
			return validateThen(ctx, w, entity, func(valid E) (InsertOutcome, error) {
				if valid.Identity() == uuid.Nil {
					valid = valid.WithIdentity(w.newID())
				}
				if err := w.table.Insert(ctx, valid); err != nil {
					return InsertOutcome{}, NewStoreError(valid.EntityName(), "insert", "failed to persist entity", err)
				}
				logger.FromContextOrDefault(ctx, w.logger).Debug("entity inserted",
					slog.String("entity", valid.EntityName()),
					slog.String("id", valid.Identity().String()))
				return choice.FromValue[domain.FieldErrors](valid.Identity()), nil
			})
		},
		func() (InsertOutcome, error) {
			return choice.FromErrors[domain.FieldErrors, uuid.UUID](nullErrors[E]()), nil
		})
}

// Update validates and fully replaces the stored row with the entity's id.
// The stored row is left untouched when validation fails.
func (w *WriteRepository[E]) Update(ctx context.Context, maybe option.Option[E]) (UpdateOutcome, error) {
	return option.MatchE(maybe,
		func(entity E) (UpdateOutcome, error) {
			return validateThen(ctx, w, entity, func(valid E) (UpdateOutcome, error) {
				if err := w.table.Replace(ctx, valid); err != nil {
					return UpdateOutcome{}, NewStoreError(valid.EntityName(), "update", "failed to persist entity", err)
				}
				logger.FromContextOrDefault(ctx, w.logger).Debug("entity updated",
					slog.String("entity", valid.EntityName()),
					slog.String("id", valid.Identity().String()))
				return choice.FromValue[domain.FieldErrors](result.Success), nil
			})
		},
		func() (UpdateOutcome, error) {
			return choice.FromErrors[domain.FieldErrors, result.Done](nullErrors[E]()), nil
		})
}

// Remove deletes the row matching the entity's id. Existence is not checked
// here; callers that need a not-found outcome look the entity up first.
func (w *WriteRepository[E]) Remove(ctx context.Context, entity E) (result.Result[result.Done], error) {
	if err := ctx.Err(); err != nil {
		return result.Result[result.Done]{}, err
	}
	if err := w.table.Delete(ctx, entity.Identity()); err != nil {
		return result.Result[result.Done]{}, NewStoreError(entity.EntityName(), "remove", "failed to delete entity", err)
	}
	logger.FromContextOrDefault(ctx, w.logger).Debug("entity removed",
		slog.String("entity", entity.EntityName()),
		slog.String("id", entity.Identity().String()))
	return result.Succeed(result.Success), nil
}

// validateThen runs persist only when entity passes validation and the
// context is still live.
func validateThen[E domain.Entity[E], T any](
	ctx context.Context,
	w *WriteRepository[E],
	entity E,
	persist func(E) (choice.Choice[domain.FieldErrors, T], error),
) (choice.Choice[domain.FieldErrors, T], error) {
	return option.MatchE(entity.Validate(),
		func(errs domain.FieldErrors) (choice.Choice[domain.FieldErrors, T], error) {
			logger.FromContextOrDefault(ctx, w.logger).Debug("entity failed validation",
				slog.String("entity", entity.EntityName()),
				slog.Any("fields", errs.Keys()))
			return choice.FromErrors[domain.FieldErrors, T](errs), nil
		},
		func() (choice.Choice[domain.FieldErrors, T], error) {
			if err := ctx.Err(); err != nil {
				return choice.Choice[domain.FieldErrors, T]{}, err
			}
			return persist(entity)
		})
}

// nullErrors builds the synthetic error for an absent entity of type E.
func nullErrors[E domain.Entity[E]]() domain.FieldErrors {
	var zero E
	return domain.NullEntityErrors(zero.EntityName())
}
