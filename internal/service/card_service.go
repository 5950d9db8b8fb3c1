package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aesirglt/AdaTech/internal/domain"
	"github.com/aesirglt/AdaTech/internal/failure"
	"github.com/aesirglt/AdaTech/internal/fp/choice"
	"github.com/aesirglt/AdaTech/internal/fp/option"
	"github.com/aesirglt/AdaTech/internal/fp/result"
	"github.com/aesirglt/AdaTech/internal/platform/logger"
	"github.com/aesirglt/AdaTech/internal/store"
)

// CardReader is the read side of card storage.
type CardReader interface {
	// FindByID returns None when no card has the id.
	FindByID(ctx context.Context, id uuid.UUID) (option.Option[domain.Card], error)

	// GetAll returns every card, or an empty slice.
	GetAll(ctx context.Context) ([]domain.Card, error)
}

// CardWriter is the write side of card storage. Validation outcomes come back
// in the Choice; the error return is reserved for infrastructure failures.
type CardWriter interface {
	Insert(ctx context.Context, card option.Option[domain.Card]) (store.InsertOutcome, error)
	Update(ctx context.Context, card option.Option[domain.Card]) (store.UpdateOutcome, error)
	Remove(ctx context.Context, card domain.Card) (result.Result[result.Done], error)
}

// Ensure the generic repositories satisfy the service interfaces.
var (
	_ CardReader = (*store.ReadRepository[domain.Card])(nil)
	_ CardWriter = (*store.WriteRepository[domain.Card])(nil)
)

// CardService provides card-related operations. Every method returns a
// Result; failures are always one of the failure kinds.
type CardService interface {
	// Create validates and stores a new card, returning it with its new id.
	Create(ctx context.Context, card option.Option[domain.Card]) result.Result[domain.Card]

	// GetAll returns every stored card.
	GetAll(ctx context.Context) result.Result[[]domain.Card]

	// Get returns the card with the given id.
	Get(ctx context.Context, id uuid.UUID) result.Result[domain.Card]

	// Update fully replaces an existing card with the supplied one.
	Update(ctx context.Context, card option.Option[domain.Card]) result.Result[domain.Card]

	// CreateDraft validates client input and creates the card it describes.
	CreateDraft(ctx context.Context, draft option.Option[domain.CardDraft]) result.Result[domain.Card]

	// Replace checks that the card exists, validates the draft and then
	// replaces every field of the stored card.
	Replace(ctx context.Context, id uuid.UUID, draft option.Option[domain.CardDraft]) result.Result[domain.Card]

	// Patch merges the supplied fields onto an existing card, then updates it.
	Patch(ctx context.Context, id uuid.UUID, draft option.Option[domain.CardDraft]) result.Result[domain.Card]

	// Remove deletes the card with the given id.
	Remove(ctx context.Context, id uuid.UUID) result.Result[result.Done]
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	reader CardReader
	writer CardWriter
	logger *slog.Logger
}

// NewCardService creates a new CardService
// It returns an error if any of the required dependencies are nil.
func NewCardService(reader CardReader, writer CardWriter, logger *slog.Logger) (CardService, error) {
	if reader == nil {
		return nil, fmt.Errorf("%w: reader", ErrNilDependency)
	}
	if writer == nil {
		return nil, fmt.Errorf("%w: writer", ErrNilDependency)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		reader: reader,
		writer: writer,
		logger: logger.With(slog.String("component", "card_service")),
	}, nil
}

// NewCardServiceForTable wires read and write repositories over a single
// table and returns the service built on them.
func NewCardServiceForTable(table store.Table[domain.Card], logger *slog.Logger) (CardService, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: table", ErrNilDependency)
	}
	return NewCardService(
		store.NewReadRepository[domain.Card](table, logger),
		store.NewWriteRepository[domain.Card](table, logger),
		logger,
	)
}

// Create implements CardService.Create
func (s *cardServiceImpl) Create(
	ctx context.Context,
	maybe option.Option[domain.Card],
) (res result.Result[domain.Card]) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer recoverInto(log, "create", &res)

	if maybe.IsNone() {
		log.Debug("create called without a card")
		return result.Fail[domain.Card](failure.InvalidInput(msgCardNull))
	}

	outcome, err := s.writer.Insert(ctx, maybe)
	if err != nil {
		log.Error("failed to create card", slog.String("error", err.Error()))
		return result.Fail[domain.Card](
			failure.Unhandled("failed to create card", NewCardServiceError("create", "insert failed", err)))
	}

	return choice.Match(outcome,
		func(errs domain.FieldErrors) result.Result[domain.Card] {
			log.Debug("card rejected by validation", slog.Any("fields", errs.Keys()))
			return result.Fail[domain.Card](failure.DomainValidation(msgDomainValidation, errs))
		},
		func(id uuid.UUID) result.Result[domain.Card] {
			created := option.Match(maybe,
				func(card domain.Card) domain.Card { return card.WithIdentity(id) },
				func() domain.Card { return domain.Card{ID: id} })
			log.Info("card created", slog.String("card_id", id.String()))
			return result.Succeed(created)
		})
}

// GetAll implements CardService.GetAll
func (s *cardServiceImpl) GetAll(ctx context.Context) (res result.Result[[]domain.Card]) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer recoverInto(log, "get_all", &res)

	cards, err := s.reader.GetAll(ctx)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return result.Fail[[]domain.Card](
			failure.ServiceUnavailable("failed to list cards", NewCardServiceError("get_all", "read failed", err)))
	}
	if cards == nil {
		cards = []domain.Card{}
	}

	log.Debug("cards listed", slog.Int("count", len(cards)))
	return result.Succeed(cards)
}

// Get implements CardService.Get
func (s *cardServiceImpl) Get(ctx context.Context, id uuid.UUID) (res result.Result[domain.Card]) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer recoverInto(log, "get", &res)

	found, err := s.reader.FindByID(ctx, id)
	if err != nil {
		log.Error("failed to get card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return result.Fail[domain.Card](
			failure.ServiceUnavailable("failed to get card", NewCardServiceError("get", "read failed", err)))
	}

	return option.Match(found,
		func(card domain.Card) result.Result[domain.Card] { return result.Succeed(card) },
		func() result.Result[domain.Card] {
			return result.Fail[domain.Card](failure.NotFound(msgCardNotFound))
		})
}

// Update implements CardService.Update
// The card must already exist; a missing id is NotFound and no write is attempted.
func (s *cardServiceImpl) Update(
	ctx context.Context,
	maybe option.Option[domain.Card],
) (res result.Result[domain.Card]) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer recoverInto(log, "update", &res)

	return option.Match(maybe,
		func(card domain.Card) result.Result[domain.Card] {
			return result.Bind(s.existing(ctx, log, "update", card.ID), func(domain.Card) result.Result[domain.Card] {
				return s.replace(ctx, log, card)
			})
		},
		func() result.Result[domain.Card] {
			log.Debug("update called without a card")
			return result.Fail[domain.Card](failure.InvalidInput(msgCardNull))
		})
}

// CreateDraft implements CardService.CreateDraft
func (s *cardServiceImpl) CreateDraft(
	ctx context.Context,
	maybe option.Option[domain.CardDraft],
) (res result.Result[domain.Card]) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer recoverInto(log, "create", &res)

	return result.Bind(fromDraft(log, maybe, uuid.Nil), func(card domain.Card) result.Result[domain.Card] {
		return s.Create(ctx, option.Some(card))
	})
}

// Replace implements CardService.Replace
// A missing id is NotFound even when the draft is also invalid.
func (s *cardServiceImpl) Replace(
	ctx context.Context,
	id uuid.UUID,
	maybe option.Option[domain.CardDraft],
) (res result.Result[domain.Card]) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer recoverInto(log, "replace", &res)

	return result.Bind(s.existing(ctx, log, "replace", id), func(domain.Card) result.Result[domain.Card] {
		return result.Bind(fromDraft(log, maybe, id), func(card domain.Card) result.Result[domain.Card] {
			return s.replace(ctx, log, card)
		})
	})
}

// Patch implements CardService.Patch
// Only the fields present in the draft change; the stored card is the base.
func (s *cardServiceImpl) Patch(
	ctx context.Context,
	id uuid.UUID,
	maybe option.Option[domain.CardDraft],
) (res result.Result[domain.Card]) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer recoverInto(log, "patch", &res)

	return result.Bind(s.existing(ctx, log, "patch", id), func(current domain.Card) result.Result[domain.Card] {
		return option.Match(maybe,
			func(draft domain.CardDraft) result.Result[domain.Card] {
				return s.replace(ctx, log, draft.Apply(current))
			},
			func() result.Result[domain.Card] {
				log.Debug("patch called without a card", slog.String("card_id", id.String()))
				return result.Fail[domain.Card](failure.InvalidInput(msgCardNull))
			})
	})
}

// Remove implements CardService.Remove
func (s *cardServiceImpl) Remove(ctx context.Context, id uuid.UUID) (res result.Result[result.Done]) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	defer recoverInto(log, "remove", &res)

	return result.Bind(s.existing(ctx, log, "remove", id), func(card domain.Card) result.Result[result.Done] {
		removed, err := s.writer.Remove(ctx, card)
		if err != nil {
			log.Error("failed to remove card",
				slog.String("error", err.Error()),
				slog.String("card_id", id.String()))
			return result.Fail[result.Done](
				failure.Unhandled("failed to remove card", NewCardServiceError("remove", "delete failed", err)))
		}
		return removed.OnSuccess(func(result.Done) {
			log.Info("card removed", slog.String("card_id", id.String()))
		})
	})
}

// existing looks the card up as the first step of a write. A read error here
// belongs to a write pipeline and is therefore Unhandled.
func (s *cardServiceImpl) existing(
	ctx context.Context,
	log *slog.Logger,
	operation string,
	id uuid.UUID,
) result.Result[domain.Card] {
	found, err := s.reader.FindByID(ctx, id)
	if err != nil {
		log.Error("failed to look up card",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return result.Fail[domain.Card](
			failure.Unhandled("failed to look up card", NewCardServiceError(operation, "lookup failed", err)))
	}

	return option.Match(found,
		func(card domain.Card) result.Result[domain.Card] { return result.Succeed(card) },
		func() result.Result[domain.Card] {
			log.Debug("card not found",
				slog.String("operation", operation),
				slog.String("card_id", id.String()))
			return result.Fail[domain.Card](failure.NotFound(msgCardNotFound))
		})
}

// replace runs the repository update and widens its outcome.
func (s *cardServiceImpl) replace(ctx context.Context, log *slog.Logger, card domain.Card) result.Result[domain.Card] {
	outcome, err := s.writer.Update(ctx, option.Some(card))
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return result.Fail[domain.Card](
			failure.Unhandled("failed to update card", NewCardServiceError("update", "replace failed", err)))
	}

	return choice.Match(outcome,
		func(errs domain.FieldErrors) result.Result[domain.Card] {
			log.Debug("card update rejected by validation",
				slog.String("card_id", card.ID.String()),
				slog.Any("fields", errs.Keys()))
			return result.Fail[domain.Card](failure.DomainValidation(msgDomainValidation, errs))
		},
		func(result.Done) result.Result[domain.Card] {
			log.Info("card updated", slog.String("card_id", card.ID.String()))
			return result.Succeed(card)
		})
}

// fromDraft turns complete client input into the card with the given id.
// Absent input is InvalidInput; missing or empty fields are DomainValidation.
func fromDraft(log *slog.Logger, maybe option.Option[domain.CardDraft], id uuid.UUID) result.Result[domain.Card] {
	return option.Match(maybe,
		func(draft domain.CardDraft) result.Result[domain.Card] {
			return option.Match(draft.Validate(),
				func(errs domain.FieldErrors) result.Result[domain.Card] {
					log.Debug("card draft rejected by validation", slog.Any("fields", errs.Keys()))
					return result.Fail[domain.Card](failure.DomainValidation(msgDomainValidation, errs))
				},
				func() result.Result[domain.Card] {
					return result.Succeed(draft.Card(id))
				})
		},
		func() result.Result[domain.Card] {
			log.Debug("card draft is absent")
			return result.Fail[domain.Card](failure.InvalidInput(msgCardNull))
		})
}

// recoverInto converts a panic in a service operation into an Unhandled
// failure stored in res. It must be deferred directly.
func recoverInto[T any](log *slog.Logger, operation string, res *result.Result[T]) {
	if r := recover(); r != nil {
		log.Error("panic in card service",
			slog.String("operation", operation),
			slog.Any("panic", r))
		*res = result.Fail[T](failure.Unhandled(
			"unexpected error",
			NewCardServiceError(operation, "panic recovered", fmt.Errorf("%v", r))))
	}
}
