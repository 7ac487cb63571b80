package storage

import (
	"context"
	"database/sql"

	"itq/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListRows возвращает ряды очереди по возрастанию queue_order.
// Для несуществующей очереди возвращается пустой список.
func (s *Store) ListRows(ctx context.Context, queueID uuid.UUID) ([]models.QueueRow, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	rows := make([]models.QueueRow, 0)
	if err := db.Where("queue_id = ?", queueID).Order("queue_order ASC").Find(&rows).Error; err != nil {
		return nil, wrapErr("list rows", err)
	}
	return rows, nil
}

func (s *Store) GetRow(ctx context.Context, id uuid.UUID) (*models.QueueRow, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var row models.QueueRow
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, wrapErr("get row", err)
	}
	return &row, nil
}

// GetRowForUpdate читает ряд с блокировкой строки до конца транзакции.
func (s *Store) GetRowForUpdate(ctx context.Context, id uuid.UUID) (*models.QueueRow, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var row models.QueueRow
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, wrapErr("get row for update", err)
	}
	return &row, nil
}

// GetRowByOrder возвращает ряд с заданным порядком или nil, если его нет.
func (s *Store) GetRowByOrder(ctx context.Context, queueID uuid.UUID, order int) (*models.QueueRow, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var row models.QueueRow
	err := db.Where("queue_id = ? AND queue_order = ?", queueID, order).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get row by order", err)
	}
	return &row, nil
}

// GetMaxOrder возвращает хвост очереди, nil если рядов нет.
func (s *Store) GetMaxOrder(ctx context.Context, queueID uuid.UUID) (*int, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var maxOrder sql.NullInt64
	row := db.Model(&models.QueueRow{}).Where("queue_id = ?", queueID).Select("MAX(queue_order)").Row()
	if err := row.Scan(&maxOrder); err != nil {
		return nil, wrapErr("get max order", err)
	}
	if !maxOrder.Valid {
		return nil, nil
	}
	order := int(maxOrder.Int64)
	return &order, nil
}

// InsertRow вставляет ряд как есть, правила порядка проверяет движок.
func (s *Store) InsertRow(ctx context.Context, queueID uuid.UUID, order int, left, right *string) (*models.QueueRow, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	row := models.QueueRow{
		QueueID:         queueID,
		QueueOrder:      order,
		LeftPlayerName:  left,
		RightPlayerName: right,
	}
	if err := db.Create(&row).Error; err != nil {
		return nil, wrapErr("insert row", err)
	}
	return &row, nil
}

// UpdateRowSlots перезаписывает оба места ряда целиком.
func (s *Store) UpdateRowSlots(ctx context.Context, rowID uuid.UUID, left, right *string) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	res := db.Model(&models.QueueRow{}).Where("id = ?", rowID).Updates(map[string]interface{}{
		"left_player_name":  left,
		"right_player_name": right,
	})
	if res.Error != nil {
		return wrapErr("update row slots", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(models.ErrNotFound, "update row slots: row %s", rowID)
	}
	return nil
}
