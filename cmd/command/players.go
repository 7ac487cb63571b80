package command

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"itq/internal/config"
	"itq/internal/engine"
	"itq/internal/models"
	"itq/internal/storage"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type Players struct {
	Logger *logrus.Logger
}

func (cmd Players) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "players",
		Short: "расстановка участников по рядам",
	}

	root.AddCommand(&cobra.Command{
		Use:   "add <url_name> <order> <left|right> <name>",
		Short: "занять место в ряду с порядком order или добавить новый ряд",
		Args:  cobra.ExactArgs(4),
		RunE: func(c *cobra.Command, args []string) error {
			order, err := strconv.Atoi(args[1])
			if err != nil || order < 0 {
				return errors.Errorf("неверный порядок %q", args[1])
			}
			side, err := models.ParseSide(args[2])
			if err != nil {
				return err
			}

			store, err := openStore(cfg, cmd.Logger)
			if err != nil {
				return err
			}
			defer store.Close()

			return addPlayer(ctx, c.OutOrStdout(), store, engine.New(store, cmd.Logger), args[0], order, side, args[3])
		},
	})
	return root
}

func addPlayer(ctx context.Context, out io.Writer, store *storage.Store, eng *engine.Engine, urlName string, order int, side models.Side, name string) error {
	queue, err := store.GetQueueByURLName(ctx, urlName)
	if err != nil {
		return err
	}

	rowID, created, err := eng.AddParticipant(ctx, queue.ID, order, side, name)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(out, "Создан ряд #%d, %s занимает место %s (%s)\n", order, name, side, rowID)
	} else {
		fmt.Fprintf(out, "%s занимает место %s в ряду #%d (%s)\n", name, side, order, rowID)
	}
	return nil
}
