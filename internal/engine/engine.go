// Package engine расставляет ряды очереди по порядку и занимает места в рядах.
//
// Каждое изменение выполняется в одной транзакции: добавление ряда блокирует
// запись очереди, занятие места блокирует сам ряд. Чтение, проверка и запись
// не пересекаются с параллельным запросом.
package engine

import (
	"context"
	"strings"

	"itq/internal/models"
	"itq/internal/storage"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Engine struct {
	store  *storage.Store
	logger *logrus.Logger
}

func New(store *storage.Store, logger *logrus.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
	}
}

// AssignToRow занимает свободное место в существующем ряду и возвращает id ряда.
// Если место занято, возвращается *models.OccupiedError, ряд не меняется.
func (e *Engine) AssignToRow(ctx context.Context, rowID uuid.UUID, side models.Side, participant string) (uuid.UUID, error) {
	name, err := validate(side, participant)
	if err != nil {
		return uuid.Nil, err
	}

	err = e.store.Transaction(ctx, func(tx *storage.Store) error {
		return assign(ctx, tx, rowID, side, name)
	})
	if err != nil {
		return uuid.Nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"row_id": rowID,
		"side":   side.String(),
	}).Debug("участник занял место в ряду")

	return rowID, nil
}

// AppendNewRow добавляет ряд в конец очереди с одним занятым местом.
// order должен быть max(order)+1, для пустой очереди 0.
func (e *Engine) AppendNewRow(ctx context.Context, queueID uuid.UUID, order int, side models.Side, participant string) (uuid.UUID, error) {
	name, err := validate(side, participant)
	if err != nil {
		return uuid.Nil, err
	}

	var rowID uuid.UUID
	err = e.store.Transaction(ctx, func(tx *storage.Store) error {
		id, err := appendRow(ctx, tx, queueID, order, side, name)
		rowID = id
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"queue_id": queueID,
		"row_id":   rowID,
		"order":    order,
		"side":     side.String(),
	}).Debug("ряд добавлен в очередь")

	return rowID, nil
}

// AddParticipant занимает место в ряду с порядком order, а если такого ряда
// нет, добавляет новый. created == true, если ряд создан.
func (e *Engine) AddParticipant(ctx context.Context, queueID uuid.UUID, order int, side models.Side, participant string) (rowID uuid.UUID, created bool, err error) {
	name, err := validate(side, participant)
	if err != nil {
		return uuid.Nil, false, err
	}

	err = e.store.Transaction(ctx, func(tx *storage.Store) error {
		if _, err := tx.LockQueue(ctx, queueID); err != nil {
			return err
		}

		row, err := tx.GetRowByOrder(ctx, queueID, order)
		if err != nil {
			return err
		}
		if row != nil {
			rowID, created = row.ID, false
			return assign(ctx, tx, row.ID, side, name)
		}

		rowID, err = appendRow(ctx, tx, queueID, order, side, name)
		created = err == nil
		return err
	})
	if err != nil {
		return uuid.Nil, false, err
	}
	return rowID, created, nil
}

// Entries возвращает классифицированные ряды очереди по порядку. Ряды, которые
// не удалось классифицировать, пишутся в лог и пропускаются.
func (e *Engine) Entries(ctx context.Context, queueID uuid.UUID) ([]models.Entry, error) {
	rows, err := e.store.ListRows(ctx, queueID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := models.Classify(row)
		if err != nil {
			e.logger.WithError(err).WithFields(logrus.Fields{
				"row_id":   row.ID,
				"queue_id": row.QueueID,
				"order":    row.QueueOrder,
			}).Warn("ряд не удалось классифицировать, пропущен")
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func assign(ctx context.Context, tx *storage.Store, rowID uuid.UUID, side models.Side, name string) error {
	row, err := tx.GetRowForUpdate(ctx, rowID)
	if err != nil {
		return err
	}

	if row.Slot(side) != nil {
		return &models.OccupiedError{RowID: row.ID, Order: row.QueueOrder, Side: side}
	}

	left, right := row.LeftPlayerName, row.RightPlayerName
	switch side {
	case models.Left:
		left = &name
	case models.Right:
		right = &name
	}
	return tx.UpdateRowSlots(ctx, row.ID, left, right)
}

func appendRow(ctx context.Context, tx *storage.Store, queueID uuid.UUID, order int, side models.Side, name string) (uuid.UUID, error) {
	// блокировка очереди не даёт двум запросам занять один и тот же хвост
	if _, err := tx.LockQueue(ctx, queueID); err != nil {
		return uuid.Nil, err
	}

	maxOrder, err := tx.GetMaxOrder(ctx, queueID)
	if err != nil {
		return uuid.Nil, err
	}

	expected := 0
	if maxOrder != nil {
		expected = *maxOrder + 1
	}
	if order != expected {
		return uuid.Nil, &models.InvalidOrderError{Expected: expected, Got: order}
	}

	var left, right *string
	switch side {
	case models.Left:
		left = &name
	case models.Right:
		right = &name
	}

	row, err := tx.InsertRow(ctx, queueID, order, left, right)
	if err != nil {
		return uuid.Nil, err
	}
	return row.ID, nil
}

func validate(side models.Side, participant string) (string, error) {
	if !side.Valid() {
		return "", errors.Wrapf(models.ErrInvalidSide, "%d", int(side))
	}
	name := strings.TrimSpace(participant)
	if name == "" {
		return "", models.ErrInvalidParticipant
	}
	return name, nil
}
