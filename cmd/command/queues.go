package command

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"itq/internal/cache"
	"itq/internal/config"
	"itq/internal/engine"
	"itq/internal/models"
	"itq/internal/storage"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type Queues struct {
	Logger *logrus.Logger
}

// invalidator сбрасывает кэш каталога, который держит запущенный сервер.
type invalidator interface {
	Invalidate(ctx context.Context)
}

func (cmd Queues) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "queues",
		Short: "просмотр и управление очередями",
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "список очередей",
			Args:  cobra.NoArgs,
			RunE: func(c *cobra.Command, _ []string) error {
				return cmd.withStore(ctx, cfg, func(store *storage.Store, _ *cache.Directory) error {
					return listQueues(ctx, c.OutOrStdout(), store)
				})
			},
		},
		&cobra.Command{
			Use:   "show <url_name>",
			Short: "ряды очереди",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				return cmd.withStore(ctx, cfg, func(store *storage.Store, _ *cache.Directory) error {
					return showQueue(ctx, c.OutOrStdout(), store, engine.New(store, cmd.Logger), args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "add <display_name> <url_name>",
			Short: "создать очередь",
			Args:  cobra.ExactArgs(2),
			RunE: func(c *cobra.Command, args []string) error {
				return cmd.withStore(ctx, cfg, func(store *storage.Store, directory *cache.Directory) error {
					return addQueue(ctx, c.OutOrStdout(), store, directory, args[1], args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "delete <url_name>",
			Short: "удалить очередь вместе с рядами",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				return cmd.withStore(ctx, cfg, func(store *storage.Store, directory *cache.Directory) error {
					return deleteQueue(ctx, c.OutOrStdout(), store, directory, args[0])
				})
			},
		},
	)
	return root
}

// withStore открывает базу и, если задан REDIS_ADDR, кэш каталога очередей,
// общий с сервером.
func (cmd Queues) withStore(ctx context.Context, cfg *config.Config, fn func(store *storage.Store, directory *cache.Directory) error) error {
	store, err := openStore(cfg, cmd.Logger)
	if err != nil {
		return err
	}
	defer store.Close()

	redisClient, err := storage.NewRedisClient(ctx, cfg.Database.Redis, cmd.Logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	return fn(store, cache.NewDirectory(redisClient, store, cfg.DirectoryCacheTTL, cmd.Logger))
}

func listQueues(ctx context.Context, out io.Writer, store *storage.Store) error {
	queues, err := store.ListQueues(ctx)
	if err != nil {
		return err
	}
	if len(queues) == 0 {
		fmt.Fprintln(out, "Очередей нет")
		return nil
	}

	rows := make([][]string, 0, len(queues))
	for _, q := range queues {
		queueRows, err := store.ListRows(ctx, q.ID)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			q.URLName,
			q.DisplayName,
			strconv.Itoa(len(queueRows)),
			q.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"url_name", "Название", "Рядов", "Создана"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
	return nil
}

func showQueue(ctx context.Context, out io.Writer, store *storage.Store, eng *engine.Engine, urlName string) error {
	queue, err := store.GetQueueByURLName(ctx, urlName)
	if err != nil {
		return err
	}
	entries, err := eng.Entries(ctx, queue.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s (%s)\n", queue.DisplayName, queue.URLName)
	if len(entries) == 0 {
		fmt.Fprintln(out, "Очередь пуста")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		left, right := models.Slots(entry.Players)
		rows = append(rows, []string{strconv.Itoa(entry.Order), orDash(left), orDash(right), entry.ID.String()})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Слева", "Справа", "ID ряда"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	))
	return nil
}

func addQueue(ctx context.Context, out io.Writer, store *storage.Store, directory invalidator, urlName, displayName string) error {
	queue, err := store.AddQueue(ctx, displayName, urlName)
	if err != nil {
		return err
	}
	directory.Invalidate(ctx)

	fmt.Fprintf(out, "Очередь %s создана (%s)\n", queue.URLName, queue.ID)
	return nil
}

// deleteQueue, как и DELETE в API, не считает отсутствие очереди ошибкой.
func deleteQueue(ctx context.Context, out io.Writer, store *storage.Store, directory invalidator, urlName string) error {
	queue, err := store.GetQueueByURLName(ctx, urlName)
	if errors.Is(err, models.ErrNotFound) {
		fmt.Fprintf(out, "Очереди %s нет, удалять нечего\n", urlName)
		return nil
	}
	if err != nil {
		return err
	}

	if err := store.DeleteQueue(ctx, queue.ID); err != nil {
		return err
	}
	directory.Invalidate(ctx)

	fmt.Fprintf(out, "Очередь %s удалена\n", urlName)
	return nil
}
