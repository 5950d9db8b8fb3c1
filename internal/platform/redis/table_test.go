package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aesirglt/AdaTech/internal/domain"
	"github.com/aesirglt/AdaTech/internal/store"
)

func newTestTable(t *testing.T) (*Table[domain.Card], *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "start miniredis")
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCardTable(client, nil), mr
}

func newCard(title string) domain.Card {
	return domain.Card{ID: uuid.New(), Title: title, Content: "content", List: "todo"}
}

func TestTable_InsertGetList(t *testing.T) {
	table, mr := newTestTable(t)
	ctx := context.Background()

	first, second := newCard("first"), newCard("second")
	require.NoError(t, table.Insert(ctx, first))
	require.NoError(t, table.Insert(ctx, second))

	assert.True(t, mr.Exists("cards:"+first.ID.String()))

	got, err := table.Get(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, got.IsSome())

	all, err := table.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Card{first, second}, all)
}

func TestTable_GetMissing(t *testing.T) {
	table, _ := newTestTable(t)

	got, err := table.Get(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.True(t, got.IsNone())
}

func TestTable_EmptyList(t *testing.T) {
	table, _ := newTestTable(t)

	all, err := table.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestTable_ReplaceAndDelete(t *testing.T) {
	table, mr := newTestTable(t)
	ctx := context.Background()
	card := newCard("card")
	require.NoError(t, table.Insert(ctx, card))

	card.List = "done"
	require.NoError(t, table.Replace(ctx, card))

	all, err := table.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "done", all[0].List)

	require.NoError(t, table.Delete(ctx, card.ID))
	assert.False(t, mr.Exists("cards:"+card.ID.String()))

	all, err = table.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTable_Errors(t *testing.T) {
	table, _ := newTestTable(t)
	ctx := context.Background()
	card := newCard("card")
	require.NoError(t, table.Insert(ctx, card))

	assert.ErrorIs(t, table.Insert(ctx, card), store.ErrDuplicate)
	assert.ErrorIs(t, table.Replace(ctx, newCard("ghost")), store.ErrNotFound)
	assert.ErrorIs(t, table.Delete(ctx, uuid.New()), store.ErrNotFound)
}

func TestTable_ServerDown(t *testing.T) {
	table, mr := newTestTable(t)
	mr.Close()

	_, err := table.List(context.Background())
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	ctx := context.Background()

	t.Run("bare address", func(t *testing.T) {
		client, err := Open(ctx, mr.Addr())
		require.NoError(t, err)
		_ = client.Close()
	})

	t.Run("url", func(t *testing.T) {
		client, err := Open(ctx, "redis://"+mr.Addr()+"/0")
		require.NoError(t, err)
		_ = client.Close()
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := Open(ctx, "127.0.0.1:1")
		assert.Error(t, err)
	})
}
