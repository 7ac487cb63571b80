package command

import (
	"context"

	"itq/internal/config"
	"itq/internal/storage"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type Migrate struct {
	Logger *logrus.Logger
}

func (cmd Migrate) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "применить или откатить миграции базы",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.main(ctx, cfg, args[0])
		},
	}
}

func (cmd Migrate) main(ctx context.Context, cfg *config.Config, direction string) error {
	store, err := openStore(cfg, cmd.Logger)
	if err != nil {
		return err
	}
	defer store.Close()

	dbName := cfg.Database.Postgres.Database
	switch direction {
	case "up":
		err = storage.MigrateUp(store.DB(), dbName)
	case "down":
		err = storage.MigrateDown(store.DB(), dbName)
	default:
		return errors.Errorf("неизвестная команда миграции: %s", direction)
	}
	if err != nil {
		return err
	}

	cmd.Logger.WithContext(ctx).WithField("direction", direction).Info("миграции выполнены")
	return nil
}
