package storage

import (
	"context"

	"itq/internal/config"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient подключается к Redis. Пустой адрес или недоступный Redis
// отключают кэш: возвращается nil без ошибки.
func NewRedisClient(ctx context.Context, cfg config.Redis, logger *logrus.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		logger.Info("REDIS_ADDR не задан, кэш каталога очередей отключён")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		// кэш необязателен: без Redis каталог читается из базы
		logger.WithError(errors.Wrap(err, "storage: failed to connect to redis")).
			WithField("addr", cfg.Addr).
			Warn("Redis недоступен, кэш каталога очередей отключён")
		return nil, nil
	}
	logger.WithFields(logrus.Fields{"addr": cfg.Addr, "db": cfg.Database}).Info("подключение к Redis успешно")

	return rdb, nil
}
