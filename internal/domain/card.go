package domain

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aesirglt/AdaTech/internal/fp/option"
)

// Card field names as they appear in validation errors.
const (
	CardFieldTitle   = "Title"
	CardFieldContent = "Content"
	CardFieldList    = "List"
)

// CardEntityName is the type name used for synthetic null-entity errors.
const CardEntityName = "Card"

// Card is a single kanban card. Values are treated as immutable: every
// modification goes through a copy (see CardDraft.Apply and WithIdentity).
type Card struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	List    string    `json:"list"`
}

// Ensure Card satisfies the Entity contract.
var _ Entity[Card] = Card{}

// Identity implements Entity.
func (c Card) Identity() uuid.UUID {
	return c.ID
}

// WithIdentity implements Entity.
func (c Card) WithIdentity(id uuid.UUID) Card {
	c.ID = id
	return c
}

// EntityName implements Entity.
func (c Card) EntityName() string {
	return CardEntityName
}

// Validate implements Entity. Each text field must be non-empty; the result
// holds only the fields that broke a rule.
func (c Card) Validate() option.Option[FieldErrors] {
	checks := newFieldChecks(CardFieldTitle, CardFieldContent, CardFieldList)

	if c.Title == "" {
		checks.add(CardFieldTitle, emptyMessage(CardFieldTitle))
	}
	if c.Content == "" {
		checks.add(CardFieldContent, emptyMessage(CardFieldContent))
	}
	if c.List == "" {
		checks.add(CardFieldList, emptyMessage(CardFieldList))
	}

	if errs, failed := checks.result(); failed {
		return option.Some(errs)
	}
	return option.None[FieldErrors]()
}

// CardDraft is card data as supplied by a client. A nil field was not sent
// (JSON null or missing key).
type CardDraft struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	List    *string `json:"list"`
}

// Validate checks client input in a single pass. A field that was not
// supplied gets "X cant be null."; a supplied but empty field gets
// "X cant be empty.". Only fields that broke a rule appear in the result.
func (d CardDraft) Validate() option.Option[FieldErrors] {
	checks := newFieldChecks(CardFieldTitle, CardFieldContent, CardFieldList)

	checkSupplied(checks, CardFieldTitle, d.Title)
	checkSupplied(checks, CardFieldContent, d.Content)
	checkSupplied(checks, CardFieldList, d.List)

	if errs, failed := checks.result(); failed {
		return option.Some(errs)
	}
	return option.None[FieldErrors]()
}

func checkSupplied(checks *fieldChecks, field string, value *string) {
	switch {
	case value == nil:
		checks.add(field, nullMessage(field))
	case *value == "":
		checks.add(field, emptyMessage(field))
	}
}

// Card builds a card with the given id from the draft. Missing fields become
// empty strings and will fail Card.Validate.
func (d CardDraft) Card(id uuid.UUID) Card {
	return d.Apply(Card{ID: id})
}

// Apply returns a copy of existing with every supplied field overridden.
// The id is never changed.
func (d CardDraft) Apply(existing Card) Card {
	updated := existing
	if d.Title != nil {
		updated.Title = *d.Title
	}
	if d.Content != nil {
		updated.Content = *d.Content
	}
	if d.List != nil {
		updated.List = *d.List
	}
	return updated
}

func emptyMessage(field string) string {
	return fmt.Sprintf("%s cant be empty.", field)
}

func nullMessage(field string) string {
	return fmt.Sprintf("%s cant be null.", field)
}
