package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"itq/cmd/command"
	_ "itq/docs"
	"itq/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// @Title		Очереди за столами
// @Version	1.0
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Ошибка загрузки конфигурации")
	}

	logger := newLogger(cfg)

	root := &cobra.Command{
		Use:           "itq",
		Short:         "Очереди из рядов с левым и правым местом",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		command.Serve{Logger: logger}.Command(ctx, cfg),
		command.Migrate{Logger: logger}.Command(ctx, cfg),
		command.Queues{Logger: logger}.Command(ctx, cfg),
		command.Players{Logger: logger}.Command(ctx, cfg),
	)

	if err := root.Execute(); err != nil {
		logger.WithError(err).Error("команда завершилась с ошибкой")
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	if cfg.AppEnv == config.ProductionEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
