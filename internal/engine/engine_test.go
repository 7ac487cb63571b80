package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"itq/internal/models"
	"itq/internal/storage"
	"itq/internal/testutil"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Engine, *storage.Store, *models.Queue) {
	t.Helper()
	store := testutil.NewStore(t)
	queue, err := store.AddQueue(context.Background(), "Бильярд", "pool")
	require.NoError(t, err)
	return New(store, testutil.NullLogger()), store, queue
}

func requireOrders(t *testing.T, store *storage.Store, queueID uuid.UUID, n int) {
	t.Helper()
	rows, err := store.ListRows(context.Background(), queueID)
	require.NoError(t, err)
	require.Len(t, rows, n)
	for i, row := range rows {
		assert.Equal(t, i, row.QueueOrder)
	}
}

func TestScenario(t *testing.T) {
	eng, store, queue := setup(t)
	ctx := context.Background()

	r0, err := eng.AppendNewRow(ctx, queue.ID, 0, models.Left, "Alice")
	require.NoError(t, err)

	_, err = eng.AppendNewRow(ctx, queue.ID, 0, models.Right, "Bob")
	var orderErr *models.InvalidOrderError
	require.True(t, errors.As(err, &orderErr))
	assert.Equal(t, models.InvalidOrderError{Expected: 1, Got: 0}, *orderErr)

	r1, err := eng.AppendNewRow(ctx, queue.ID, 1, models.Right, "Bob")
	require.NoError(t, err)
	assert.NotEqual(t, r0, r1)

	got, err := eng.AssignToRow(ctx, r0, models.Right, "Carol")
	require.NoError(t, err)
	assert.Equal(t, r0, got)

	_, err = eng.AssignToRow(ctx, r0, models.Right, "Dave")
	var occupied *models.OccupiedError
	require.True(t, errors.As(err, &occupied))
	assert.Equal(t, models.OccupiedError{RowID: r0, Order: 0, Side: models.Right}, *occupied)

	entries, err := eng.Entries(ctx, queue.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.Both{Left: "Alice", Right: "Carol"}, entries[0].Players)
	assert.Equal(t, models.RightOnly{Name: "Bob"}, entries[1].Players)

	requireOrders(t, store, queue.ID, 2)

	require.NoError(t, store.DeleteQueue(ctx, queue.ID))
	rows, err := store.ListRows(ctx, queue.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAppendNewRowOrderChecks(t *testing.T) {
	eng, store, queue := setup(t)
	ctx := context.Background()

	tests := []struct {
		order    int
		expected int
	}{
		{order: 1, expected: 0},
		{order: -1, expected: 0},
		{order: 5, expected: 0},
	}
	for _, tt := range tests {
		_, err := eng.AppendNewRow(ctx, queue.ID, tt.order, models.Left, "Alice")
		var orderErr *models.InvalidOrderError
		require.True(t, errors.As(err, &orderErr), "order %d", tt.order)
		assert.Equal(t, tt.expected, orderErr.Expected)
		assert.Equal(t, tt.order, orderErr.Got)
	}

	requireOrders(t, store, queue.ID, 0)
}

func TestAppendNewRowStaleOrderFailsEveryTime(t *testing.T) {
	eng, store, queue := setup(t)
	ctx := context.Background()

	_, err := eng.AppendNewRow(ctx, queue.ID, 0, models.Left, "Alice")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = eng.AppendNewRow(ctx, queue.ID, 0, models.Left, "Eve")
		var orderErr *models.InvalidOrderError
		require.True(t, errors.As(err, &orderErr))
		assert.Equal(t, 1, orderErr.Expected)
	}

	requireOrders(t, store, queue.ID, 1)
}

func TestAppendNewRowMissingQueue(t *testing.T) {
	eng, _, _ := setup(t)

	_, err := eng.AppendNewRow(context.Background(), uuid.New(), 0, models.Left, "Alice")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestOrdersStayContiguous(t *testing.T) {
	eng, store, queue := setup(t)
	ctx := context.Background()

	sides := []models.Side{models.Left, models.Right}
	for i := 0; i < 10; i++ {
		rowID, err := eng.AppendNewRow(ctx, queue.ID, i, sides[i%2], "p")
		require.NoError(t, err)

		if i%3 == 0 {
			_, err = eng.AssignToRow(ctx, rowID, sides[(i+1)%2], "q")
			require.NoError(t, err)
		}
		// устаревший порядок отклоняется и ничего не меняет
		_, err = eng.AppendNewRow(ctx, queue.ID, i, models.Left, "late")
		require.Error(t, err)
	}

	requireOrders(t, store, queue.ID, 10)
}

func TestAssignToRowOccupiedDoesNotMutate(t *testing.T) {
	eng, store, queue := setup(t)
	ctx := context.Background()

	rowID, err := eng.AppendNewRow(ctx, queue.ID, 0, models.Left, "Alice")
	require.NoError(t, err)

	_, err = eng.AssignToRow(ctx, rowID, models.Left, "Mallory")
	var occupied *models.OccupiedError
	require.True(t, errors.As(err, &occupied))
	assert.Equal(t, models.Left, occupied.Side)

	row, err := store.GetRow(ctx, rowID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", *row.LeftPlayerName)
	assert.Nil(t, row.RightPlayerName)
}

func TestAssignToRowKeepsOtherSide(t *testing.T) {
	eng, store, queue := setup(t)
	ctx := context.Background()

	rowID, err := eng.AppendNewRow(ctx, queue.ID, 0, models.Right, "Bob")
	require.NoError(t, err)

	_, err = eng.AssignToRow(ctx, rowID, models.Left, "  Alice  ")
	require.NoError(t, err)

	row, err := store.GetRow(ctx, rowID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", *row.LeftPlayerName)
	assert.Equal(t, "Bob", *row.RightPlayerName)
}

func TestAssignToRowMissingRow(t *testing.T) {
	eng, _, _ := setup(t)

	_, err := eng.AssignToRow(context.Background(), uuid.New(), models.Left, "Alice")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestValidation(t *testing.T) {
	eng, store, queue := setup(t)
	ctx := context.Background()

	_, err := eng.AppendNewRow(ctx, queue.ID, 0, models.Left, "   ")
	assert.ErrorIs(t, err, models.ErrInvalidParticipant)

	_, err = eng.AppendNewRow(ctx, queue.ID, 0, models.Side(7), "Alice")
	assert.ErrorIs(t, err, models.ErrInvalidSide)

	_, _, err = eng.AddParticipant(ctx, queue.ID, 0, models.Right, "")
	assert.ErrorIs(t, err, models.ErrInvalidParticipant)

	requireOrders(t, store, queue.ID, 0)
}

func TestAddParticipant(t *testing.T) {
	eng, store, queue := setup(t)
	ctx := context.Background()

	r0, created, err := eng.AddParticipant(ctx, queue.ID, 0, models.Left, "Alice")
	require.NoError(t, err)
	assert.True(t, created)

	same, created, err := eng.AddParticipant(ctx, queue.ID, 0, models.Right, "Carol")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, r0, same)

	_, _, err = eng.AddParticipant(ctx, queue.ID, 0, models.Right, "Dave")
	var occupied *models.OccupiedError
	assert.True(t, errors.As(err, &occupied))

	_, _, err = eng.AddParticipant(ctx, queue.ID, 2, models.Left, "Eve")
	var orderErr *models.InvalidOrderError
	require.True(t, errors.As(err, &orderErr))
	assert.Equal(t, 1, orderErr.Expected)

	_, _, err = eng.AddParticipant(ctx, uuid.New(), 0, models.Left, "Ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)

	requireOrders(t, store, queue.ID, 1)
}

func TestEntriesRoundTrip(t *testing.T) {
	eng, store, queue := setup(t)
	ctx := context.Background()

	alice := "Alice"
	_, err := store.InsertRow(ctx, queue.ID, 0, &alice, nil)
	require.NoError(t, err)

	entries, err := eng.Entries(ctx, queue.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.LeftOnly{Name: "Alice"}, entries[0].Players)
}

func TestEntriesSkipsAndLogsEmptyRows(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	queue, err := store.AddQueue(ctx, "Стол", "table")
	require.NoError(t, err)

	logger, hook := logtest.NewNullLogger()
	eng := New(store, logger)

	alice, bob := "Alice", "Bob"
	_, err = store.InsertRow(ctx, queue.ID, 0, &alice, nil)
	require.NoError(t, err)
	// ряд без участников в обход движка
	empty, err := store.InsertRow(ctx, queue.ID, 1, nil, nil)
	require.NoError(t, err)
	_, err = store.InsertRow(ctx, queue.ID, 2, nil, &bob)
	require.NoError(t, err)

	entries, err := eng.Entries(ctx, queue.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].Order)
	assert.Equal(t, 2, entries[1].Order)

	require.Len(t, hook.AllEntries(), 1)
	logged := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, logged.Level)
	assert.Equal(t, empty.ID, logged.Data["row_id"])

	var emptyErr *models.EmptyRowError
	require.True(t, errors.As(logged.Data[logrus.ErrorKey].(error), &emptyErr))
	assert.Equal(t, 1, emptyErr.Order)
}

func TestEntriesUnknownQueueIsEmpty(t *testing.T) {
	eng, _, _ := setup(t)

	entries, err := eng.Entries(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConcurrentAppendsTakeOneTail(t *testing.T) {
	eng, store, queue := setup(t)
	ctx := context.Background()

	const workers = 20
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = eng.AppendNewRow(ctx, queue.ID, 0, models.Left, fmt.Sprintf("p%d", i))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var orderErr *models.InvalidOrderError
		require.True(t, errors.As(err, &orderErr), "неожиданная ошибка: %v", err)
		assert.Equal(t, 1, orderErr.Expected)
	}
	assert.Equal(t, 1, succeeded)

	requireOrders(t, store, queue.ID, 1)
}

func TestConcurrentAddParticipantSameOrder(t *testing.T) {
	eng, store, queue := setup(t)
	ctx := context.Background()

	const workers = 10
	type result struct {
		created bool
		err     error
	}
	results := make([]result, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, created, err := eng.AddParticipant(ctx, queue.ID, 0, models.Left, fmt.Sprintf("p%d", i))
			results[i] = result{created: created, err: err}
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r.err == nil {
			succeeded++
			assert.True(t, r.created)
			continue
		}
		var occupied *models.OccupiedError
		var orderErr *models.InvalidOrderError
		assert.True(t, errors.As(r.err, &occupied) || errors.As(r.err, &orderErr), "неожиданная ошибка: %v", r.err)
	}
	assert.Equal(t, 1, succeeded)

	requireOrders(t, store, queue.ID, 1)
	entries, err := eng.Entries(ctx, queue.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	_, ok := entries[0].Players.(models.LeftOnly)
	assert.True(t, ok)
}
