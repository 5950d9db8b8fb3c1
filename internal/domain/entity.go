package domain

import (
	"github.com/google/uuid"

	"github.com/aesirglt/AdaTech/internal/fp/option"
)

// Entity is the contract every persisted type fulfils so the generic
// repositories can gate writes on self-validation.
type Entity[E any] interface {
	// Identity returns the entity's id, uuid.Nil before the first insert.
	Identity() uuid.UUID

	// WithIdentity returns a copy carrying id. The receiver is not modified.
	WithIdentity(id uuid.UUID) E

	// EntityName is the type name used to key synthetic errors.
	EntityName() string

	// Validate returns Some with the offending fields, or None when valid.
	Validate() option.Option[FieldErrors]
}
