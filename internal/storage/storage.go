package storage

import (
	"context"
	"fmt"
	"time"

	"itq/internal/config"
	"itq/internal/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// ConnectDatabase открывает пул соединений к Postgres. Размер пула ограничен
// cfg.MaxConns, при исчерпании пула операции упираются в AcquireTimeout.
func ConnectDatabase(cfg config.Postgres, logger *logrus.Logger) (*gorm.DB, error) {
	dsn := cfg.URL
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, cfg.SSLMode)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(logger),
	})
	if err != nil {
		return nil, errors.Wrap(err, "storage: failed to connect to postgres")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "storage: failed to get sql.DB")
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MaxConns)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	logger.WithFields(logrus.Fields{
		"host":      cfg.Host,
		"database":  cfg.Database,
		"max_conns": cfg.MaxConns,
	}).Info("подключение к базе данных успешно")

	return db, nil
}

// NewGormLogger направляет логи gorm в logrus.
func NewGormLogger(logger *logrus.Logger) gormLogger.Interface {
	level := gormLogger.Warn
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		level = gormLogger.Info
	}
	return gormLogger.New(logger, gormLogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// AutoMigrate создаёт таблицы queues и queue_rows средствами gorm.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Queue{}, &models.QueueRow{}); err != nil {
		return errors.Wrap(err, "storage: auto migrate")
	}
	return nil
}

// Store: хранилище очередей и рядов поверх gorm
type Store struct {
	db      *gorm.DB
	timeout time.Duration
}

// New создаёт Store. timeout ограничивает ожидание соединения и выполнение
// одной операции (0 отключает ограничение).
func New(db *gorm.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

// DB отдаёт нижележащий *gorm.DB (миграции, закрытие пула).
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "storage: close")
	}
	return sqlDB.Close()
}

func (s *Store) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if s.timeout <= 0 {
		return s.db.WithContext(ctx), func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return s.db.WithContext(ctx), cancel
}

// Transaction выполняет fn в одной транзакции. Ошибки fn возвращаются как есть,
// ошибки begin/commit оборачиваются в StoreError.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	var fnErr error
	err := db.Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&Store{db: tx})
		return fnErr
	})
	if err != nil && err != fnErr {
		return wrapErr("transaction", err)
	}
	return err
}

func wrapErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(models.ErrNotFound, op)
	}
	return errors.WithStack(&models.StoreError{Op: op, Err: err})
}
