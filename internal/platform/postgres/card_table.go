package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aesirglt/AdaTech/internal/domain"
	"github.com/aesirglt/AdaTech/internal/fp/option"
	"github.com/aesirglt/AdaTech/internal/platform/logger"
	"github.com/aesirglt/AdaTech/internal/store"
)

// CardTable implements store.Table for cards using a PostgreSQL database as
// the storage backend.
type CardTable struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCardTable creates a new PostgreSQL card table.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewCardTable(db store.DBTX, logger *slog.Logger) *CardTable {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CardTable{
		db:     db,
		logger: logger.With(slog.String("component", "card_table")),
	}
}

// Ensure CardTable implements store.Table
var _ store.Table[domain.Card] = (*CardTable)(nil)

// Get implements store.Table.Get
func (t *CardTable) Get(ctx context.Context, id uuid.UUID) (option.Option[domain.Card], error) {
	log := logger.FromContextOrDefault(ctx, t.logger)

	query := `
		SELECT id, title, content, list
		FROM cards
		WHERE id = $1
	`

	var card domain.Card
	err := t.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.Title,
		&card.Content,
		&card.List,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", id.String()))
			return option.None[domain.Card](), nil
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return option.None[domain.Card](), MapError(err)
	}

	return option.Some(card), nil
}

// List implements store.Table.List
// Rows are returned oldest first.
func (t *CardTable) List(ctx context.Context) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, t.logger)

	query := `
		SELECT id, title, content, list
		FROM cards
		ORDER BY created_at, id
	`

	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	cards := make([]domain.Card, 0)
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(&card.ID, &card.Title, &card.Content, &card.List); err != nil {
			log.Error("failed to scan card row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating card rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("cards listed", slog.Int("count", len(cards)))
	return cards, nil
}

// Insert implements store.Table.Insert
func (t *CardTable) Insert(ctx context.Context, card domain.Card) error {
	log := logger.FromContextOrDefault(ctx, t.logger)

	query := `
		INSERT INTO cards (id, title, content, list)
		VALUES ($1, $2, $3, $4)
	`

	_, err := t.db.ExecContext(ctx, query, card.ID, card.Title, card.Content, card.List)
	if err != nil {
		log.Error("failed to insert card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	log.Debug("card inserted", slog.String("card_id", card.ID.String()))
	return nil
}

// Replace implements store.Table.Replace
func (t *CardTable) Replace(ctx context.Context, card domain.Card) error {
	log := logger.FromContextOrDefault(ctx, t.logger)

	query := `
		UPDATE cards
		SET title = $1, content = $2, list = $3, updated_at = NOW()
		WHERE id = $4
	`

	result, err := t.db.ExecContext(ctx, query, card.Title, card.Content, card.List, card.ID)
	if err != nil {
		log.Error("failed to replace card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "card"); err != nil {
		log.Debug("card to replace not found", slog.String("card_id", card.ID.String()))
		return err
	}

	log.Debug("card replaced", slog.String("card_id", card.ID.String()))
	return nil
}

// Delete implements store.Table.Delete
func (t *CardTable) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, t.logger)

	result, err := t.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "card"); err != nil {
		log.Debug("card to delete not found", slog.String("card_id", id.String()))
		return err
	}

	log.Debug("card deleted", slog.String("card_id", id.String()))
	return nil
}
