package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/aesirglt/AdaTech/internal/domain"
	"github.com/aesirglt/AdaTech/internal/fp/option"
	"github.com/aesirglt/AdaTech/internal/platform/logger"
	"github.com/aesirglt/AdaTech/internal/store"
)

// CardPrefix is the key prefix for card rows.
const CardPrefix = "cards"

// Open builds a client from either a redis:// URL or a bare host:port
// address and verifies the connection.
func Open(ctx context.Context, addr string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(addr)
	if err != nil {
		opts = &goredis.Options{Addr: strings.TrimSpace(addr)}
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// Table stores entities of type E in Redis.
type Table[E domain.Entity[E]] struct {
	client *goredis.Client
	prefix string
	logger *slog.Logger
}

// NewTable creates a Table whose keys start with prefix.
// If logger is nil, a default logger will be used.
func NewTable[E domain.Entity[E]](client *goredis.Client, prefix string, logger *slog.Logger) *Table[E] {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Table[E]{
		client: client,
		prefix: prefix,
		logger: logger.With(slog.String("component", "redis_table"), slog.String("prefix", prefix)),
	}
}

// NewCardTable creates the card table.
func NewCardTable(client *goredis.Client, logger *slog.Logger) *Table[domain.Card] {
	return NewTable[domain.Card](client, CardPrefix, logger)
}

// Ensure Table implements store.Table
var _ store.Table[domain.Card] = (*Table[domain.Card])(nil)

func (t *Table[E]) rowKey(id uuid.UUID) string {
	return t.prefix + ":" + id.String()
}

func (t *Table[E]) indexKey() string {
	return t.prefix + ":index"
}

func (t *Table[E]) seqKey() string {
	return t.prefix + ":seq"
}

// Get implements store.Table.
func (t *Table[E]) Get(ctx context.Context, id uuid.UUID) (option.Option[E], error) {
	data, err := t.client.Get(ctx, t.rowKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return option.None[E](), nil
		}
		logger.FromContextOrDefault(ctx, t.logger).Error("failed to get row",
			slog.String("error", err.Error()),
			slog.String("id", id.String()))
		return option.None[E](), err
	}

	var entity E
	if err := json.Unmarshal(data, &entity); err != nil {
		return option.None[E](), fmt.Errorf("failed to decode row %s: %w", id, err)
	}
	return option.Some(entity), nil
}

// List implements store.Table.
func (t *Table[E]) List(ctx context.Context) ([]E, error) {
	log := logger.FromContextOrDefault(ctx, t.logger)

	ids, err := t.client.ZRange(ctx, t.indexKey(), 0, -1).Result()
	if err != nil {
		log.Error("failed to read index", slog.String("error", err.Error()))
		return nil, err
	}

	all := make([]E, 0, len(ids))
	if len(ids) == 0 {
		return all, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = t.prefix + ":" + id
	}

	values, err := t.client.MGet(ctx, keys...).Result()
	if err != nil {
		log.Error("failed to read rows", slog.String("error", err.Error()))
		return nil, err
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Index entry without a row; the row was removed between calls.
			log.Debug("skipping dangling index entry", slog.String("id", ids[i]))
			continue
		}
		var entity E
		if err := json.Unmarshal([]byte(raw), &entity); err != nil {
			return nil, fmt.Errorf("failed to decode row %s: %w", ids[i], err)
		}
		all = append(all, entity)
	}
	return all, nil
}

// Insert implements store.Table.
func (t *Table[E]) Insert(ctx context.Context, entity E) error {
	id := entity.Identity()
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode row %s: %w", id, err)
	}

	created, err := t.client.SetNX(ctx, t.rowKey(id), data, 0).Result()
	if err != nil {
		return err
	}
	if !created {
		return store.ErrDuplicate
	}

	seq, err := t.client.Incr(ctx, t.seqKey()).Result()
	if err != nil {
		return err
	}
	return t.client.ZAdd(ctx, t.indexKey(), goredis.Z{Score: float64(seq), Member: id.String()}).Err()
}

// Replace implements store.Table.
func (t *Table[E]) Replace(ctx context.Context, entity E) error {
	id := entity.Identity()
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to encode row %s: %w", id, err)
	}

	replaced, err := t.client.SetXX(ctx, t.rowKey(id), data, 0).Result()
	if err != nil {
		return err
	}
	if !replaced {
		return store.ErrNotFound
	}
	return nil
}

// Delete implements store.Table.
func (t *Table[E]) Delete(ctx context.Context, id uuid.UUID) error {
	var del *goredis.IntCmd
	_, err := t.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		del = pipe.Del(ctx, t.rowKey(id))
		pipe.ZRem(ctx, t.indexKey(), id.String())
		return nil
	})
	if err != nil {
		return err
	}
	if del.Val() == 0 {
		return store.ErrNotFound
	}
	return nil
}
