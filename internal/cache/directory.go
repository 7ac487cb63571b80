// Package cache держит каталог очередей в Redis, чтобы главная страница
// не ходила в базу на каждый запрос.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"itq/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const DirectoryKey = "itq:queues"

type queueLister interface {
	ListQueues(ctx context.Context) ([]models.Queue, error)
}

type cachedQueue struct {
	ID          string    `json:"id"`
	URLName     string    `json:"url_name"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Directory кэширует результат ListQueues. Ошибки Redis только логируются:
// при недоступном кэше запрос уходит в базу.
type Directory struct {
	redisClient *redis.Client
	store       queueLister
	ttl         time.Duration
	logger      *logrus.Logger
}

// NewDirectory создаёт кэш. При redisClient == nil кэш выключен.
func NewDirectory(redisClient *redis.Client, store queueLister, ttl time.Duration, logger *logrus.Logger) *Directory {
	return &Directory{
		redisClient: redisClient,
		store:       store,
		ttl:         ttl,
		logger:      logger,
	}
}

func (d *Directory) ListQueues(ctx context.Context) ([]models.Queue, error) {
	if d.redisClient != nil {
		if queues, ok := d.get(ctx); ok {
			return queues, nil
		}
	}

	queues, err := d.store.ListQueues(ctx)
	if err != nil {
		return nil, err
	}

	if d.redisClient != nil {
		d.set(ctx, queues)
	}
	return queues, nil
}

// Invalidate сбрасывает кэш после добавления или удаления очереди.
func (d *Directory) Invalidate(ctx context.Context) {
	if d.redisClient == nil {
		return
	}
	if err := d.redisClient.Del(ctx, DirectoryKey).Err(); err != nil {
		d.logger.WithError(err).Warn("не удалось сбросить кэш каталога очередей")
	}
}

func (d *Directory) get(ctx context.Context) ([]models.Queue, bool) {
	cached, err := d.redisClient.Get(ctx, DirectoryKey).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		d.logger.WithError(err).Warn("ошибка чтения кэша каталога очередей")
		return nil, false
	}

	var items []cachedQueue
	if err := json.Unmarshal([]byte(cached), &items); err != nil {
		d.logger.WithError(err).Warn("повреждённый кэш каталога очередей")
		return nil, false
	}

	queues := make([]models.Queue, 0, len(items))
	for _, item := range items {
		q := models.Queue{URLName: item.URLName, DisplayName: item.DisplayName, CreatedAt: item.CreatedAt}
		if err := q.ID.UnmarshalText([]byte(item.ID)); err != nil {
			d.logger.WithError(err).Warn("повреждённый кэш каталога очередей")
			return nil, false
		}
		queues = append(queues, q)
	}
	return queues, true
}

func (d *Directory) set(ctx context.Context, queues []models.Queue) {
	items := make([]cachedQueue, 0, len(queues))
	for _, q := range queues {
		items = append(items, cachedQueue{
			ID:          q.ID.String(),
			URLName:     q.URLName,
			DisplayName: q.DisplayName,
			CreatedAt:   q.CreatedAt,
		})
	}

	body, err := json.Marshal(items)
	if err != nil {
		d.logger.WithError(err).Warn("не удалось сериализовать каталог очередей")
		return
	}
	if err := d.redisClient.Set(ctx, DirectoryKey, string(body), d.ttl).Err(); err != nil {
		d.logger.WithError(err).Warn("ошибка записи кэша каталога очередей")
	}
}
