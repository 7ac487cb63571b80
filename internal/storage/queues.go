package storage

import (
	"context"

	"itq/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

func (s *Store) ListQueues(ctx context.Context) ([]models.Queue, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var queues []models.Queue
	if err := db.Order("created_at ASC").Find(&queues).Error; err != nil {
		return nil, wrapErr("list queues", err)
	}
	return queues, nil
}

// GetQueueByURLName ищет очередь по уникальному url_name, ErrNotFound если её нет.
func (s *Store) GetQueueByURLName(ctx context.Context, urlName string) (*models.Queue, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var queue models.Queue
	if err := db.Where("url_name = ?", urlName).First(&queue).Error; err != nil {
		return nil, wrapErr("get queue by url name", err)
	}
	return &queue, nil
}

func (s *Store) GetQueue(ctx context.Context, id uuid.UUID) (*models.Queue, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var queue models.Queue
	if err := db.Where("id = ?", id).First(&queue).Error; err != nil {
		return nil, wrapErr("get queue", err)
	}
	return &queue, nil
}

// LockQueue читает очередь с блокировкой строки (SELECT ... FOR UPDATE).
// Имеет смысл только внутри Transaction.
func (s *Store) LockQueue(ctx context.Context, id uuid.UUID) (*models.Queue, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var queue models.Queue
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&queue).Error; err != nil {
		return nil, wrapErr("lock queue", err)
	}
	return &queue, nil
}

// AddQueue создаёт очередь. ErrInvalidQueueName при недопустимых именах,
// ErrConflict если url_name уже занят.
func (s *Store) AddQueue(ctx context.Context, displayName, urlName string) (*models.Queue, error) {
	if err := models.ValidateQueueNames(displayName, urlName); err != nil {
		return nil, err
	}

	db, cancel := s.conn(ctx)
	defer cancel()

	var existing int64
	if err := db.Model(&models.Queue{}).Where("url_name = ?", urlName).Count(&existing).Error; err != nil {
		return nil, wrapErr("add queue", err)
	}
	if existing > 0 {
		return nil, errors.Wrapf(models.ErrConflict, "url name %q", urlName)
	}

	queue := models.Queue{DisplayName: displayName, URLName: urlName}
	if err := db.Create(&queue).Error; err != nil {
		// гонка между проверкой и вставкой ловится уникальным индексом
		if isUniqueViolation(err) {
			return nil, errors.Wrapf(models.ErrConflict, "url name %q", urlName)
		}
		return nil, wrapErr("add queue", err)
	}
	return &queue, nil
}

// DeleteQueue удаляет очередь вместе с рядами. Отсутствие очереди ошибкой не считается.
func (s *Store) DeleteQueue(ctx context.Context, id uuid.UUID) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("queue_id = ?", id).Delete(&models.QueueRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Queue{}).Error
	})
	if err != nil {
		return wrapErr("delete queue", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
