package command

import (
	"context"
	"fmt"

	"itq/internal/cache"
	"itq/internal/config"
	"itq/internal/engine"
	"itq/internal/handlers"
	"itq/internal/storage"
	"itq/internal/tasks"
	"itq/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type Serve struct {
	Logger *logrus.Logger
}

func (cmd Serve) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "запустить HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.main(ctx, cfg)
		},
	}
}

func (cmd Serve) main(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(cfg, cmd.Logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.AutoMigrate {
		if err := storage.MigrateUp(store.DB(), cfg.Database.Postgres.Database); err != nil {
			return errors.Wrap(err, "serve: migrations")
		}
		cmd.Logger.Info("миграции применены")
	}

	redisClient, err := storage.NewRedisClient(ctx, cfg.Database.Redis, cmd.Logger)
	if err != nil {
		return errors.Wrap(err, "serve: failed to connect to redis")
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				cmd.Logger.WithError(err).Warn("ошибка закрытия redis")
			}
		}()
	}

	hub := ws.NewHub(cmd.Logger)
	go hub.Run(ctx)

	auditor := tasks.NewAuditor(store, cmd.Logger)
	scheduler, err := tasks.InitScheduler(ctx, cfg.AuditSchedule, auditor, cmd.Logger)
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	if cfg.AppEnv == config.ProductionEnv {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.New(
		store,
		engine.New(store, cmd.Logger),
		cache.NewDirectory(redisClient, store, cfg.DirectoryCacheTTL, cmd.Logger),
		hub,
		cmd.Logger,
	)
	router := handlers.NewRouter(h, cfg.HTTP.AllowOrigins, cmd.Logger)

	return handlers.Serve(ctx, fmt.Sprintf(":%d", cfg.HTTP.Port), router, cmd.Logger)
}

func openStore(cfg *config.Config, logger *logrus.Logger) (*storage.Store, error) {
	db, err := storage.ConnectDatabase(cfg.Database.Postgres, logger)
	if err != nil {
		return nil, err
	}
	return storage.New(db, cfg.Database.Postgres.AcquireTimeout), nil
}
