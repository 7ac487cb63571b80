// Package testutil содержит помощники для тестов: in-memory SQLite вместо Postgres.
package testutil

import (
	"fmt"
	"io"
	"testing"

	"itq/internal/storage"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// ConnectTestingDatabase открывает отдельную in-memory базу на каждый тест
// и прогоняет AutoMigrate.
func ConnectTestingDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// одно соединение: in-memory база живёт, пока оно открыто
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := storage.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// NewStore возвращает Store поверх ConnectTestingDatabase.
func NewStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.New(ConnectTestingDatabase(t), 0)
}

// NullLogger возвращает logrus без вывода.
func NullLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
