package command

import (
	"bytes"
	"context"
	"testing"
	"time"

	"itq/internal/cache"
	"itq/internal/engine"
	"itq/internal/models"
	"itq/internal/storage"
	"itq/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T, store *storage.Store) *cache.Directory {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewDirectory(client, store, time.Minute, testutil.NullLogger())
}

func TestRenderTable(t *testing.T) {
	assert.Empty(t, renderTable(nil, nil, nil))

	out := renderTable([]string{"#", "Слева"}, [][]string{{"0", "Alice"}, {"1"}}, []columnAlignment{alignRight})
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Слева")
}

func TestQueueCommands(t *testing.T) {
	store := testutil.NewStore(t)
	directory := newTestDirectory(t, store)
	eng := engine.New(store, testutil.NullLogger())
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, listQueues(ctx, &out, store))
	assert.Contains(t, out.String(), "Очередей нет")

	out.Reset()
	require.NoError(t, addQueue(ctx, &out, store, directory, "pool", "Бильярд"))
	assert.Contains(t, out.String(), "Очередь pool создана")

	err := addQueue(ctx, &out, store, directory, "pool", "Ещё раз")
	assert.ErrorIs(t, err, models.ErrConflict)

	out.Reset()
	require.NoError(t, addPlayer(ctx, &out, store, eng, "pool", 0, models.Left, "Alice"))
	assert.Contains(t, out.String(), "Создан ряд #0")

	out.Reset()
	require.NoError(t, addPlayer(ctx, &out, store, eng, "pool", 0, models.Right, "Bob"))
	assert.Contains(t, out.String(), "Bob занимает место right в ряду #0")

	err = addPlayer(ctx, &out, store, eng, "pool", 0, models.Right, "Carol")
	var occupied *models.OccupiedError
	assert.ErrorAs(t, err, &occupied)

	out.Reset()
	require.NoError(t, listQueues(ctx, &out, store))
	assert.Contains(t, out.String(), "Бильярд")

	out.Reset()
	require.NoError(t, showQueue(ctx, &out, store, eng, "pool"))
	assert.Contains(t, out.String(), "Alice")
	assert.Contains(t, out.String(), "Bob")

	out.Reset()
	require.NoError(t, deleteQueue(ctx, &out, store, directory, "pool"))
	assert.Contains(t, out.String(), "Очередь pool удалена")

	err = showQueue(ctx, &out, store, eng, "pool")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAddQueueRejectsInvalidURLName(t *testing.T) {
	store := testutil.NewStore(t)
	directory := newTestDirectory(t, store)
	ctx := context.Background()

	var out bytes.Buffer
	err := addQueue(ctx, &out, store, directory, "My Queue", "X")
	assert.ErrorIs(t, err, models.ErrInvalidQueueName)

	queues, err := store.ListQueues(ctx)
	require.NoError(t, err)
	assert.Empty(t, queues)
}

func TestDeleteMissingQueueSucceeds(t *testing.T) {
	store := testutil.NewStore(t)
	directory := newTestDirectory(t, store)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, deleteQueue(ctx, &out, store, directory, "missing"))
	assert.Contains(t, out.String(), "удалять нечего")

	require.NoError(t, addQueue(ctx, &out, store, directory, "pool", "Бильярд"))
	require.NoError(t, deleteQueue(ctx, &out, store, directory, "pool"))
	// повторное удаление тоже не ошибка
	require.NoError(t, deleteQueue(ctx, &out, store, directory, "pool"))
}

func TestQueueWritesInvalidateDirectory(t *testing.T) {
	store := testutil.NewStore(t)
	directory := newTestDirectory(t, store)
	ctx := context.Background()
	var out bytes.Buffer

	// прогреваем кэш пустым каталогом
	queues, err := directory.ListQueues(ctx)
	require.NoError(t, err)
	assert.Empty(t, queues)

	require.NoError(t, addQueue(ctx, &out, store, directory, "pool", "Бильярд"))
	queues, err = directory.ListQueues(ctx)
	require.NoError(t, err)
	require.Len(t, queues, 1)
	assert.Equal(t, "pool", queues[0].URLName)

	require.NoError(t, deleteQueue(ctx, &out, store, directory, "pool"))
	queues, err = directory.ListQueues(ctx)
	require.NoError(t, err)
	assert.Empty(t, queues)
}
