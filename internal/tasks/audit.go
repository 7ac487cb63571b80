package tasks

import (
	"context"
	"fmt"

	"itq/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type AnomalyKind string

const (
	AnomalyGap       AnomalyKind = "gap"
	AnomalyDuplicate AnomalyKind = "duplicate"
	AnomalyEmptyRow  AnomalyKind = "empty_row"
)

// Anomaly описывает найденное при проверке нарушение целостности очереди
type Anomaly struct {
	Kind  AnomalyKind
	RowID uuid.UUID
	Order int
	// Expected заполняется для gap: какой порядок должен был стоять на месте Order
	Expected int
}

func (a Anomaly) String() string {
	switch a.Kind {
	case AnomalyGap:
		return fmt.Sprintf("gap: expected order %d, found %d", a.Expected, a.Order)
	case AnomalyDuplicate:
		return fmt.Sprintf("duplicate order %d (row %s)", a.Order, a.RowID)
	default:
		return fmt.Sprintf("empty row %s at order %d", a.RowID, a.Order)
	}
}

// AuditRows проверяет ряды одной очереди, отсортированные по queue_order:
// порядок 0..n-1 без пропусков и повторов, в каждом ряду хотя бы один участник.
func AuditRows(rows []models.QueueRow) []Anomaly {
	var anomalies []Anomaly
	expected := 0
	for i, row := range rows {
		switch {
		case i > 0 && row.QueueOrder == rows[i-1].QueueOrder:
			anomalies = append(anomalies, Anomaly{Kind: AnomalyDuplicate, RowID: row.ID, Order: row.QueueOrder})
		case row.QueueOrder != expected:
			anomalies = append(anomalies, Anomaly{Kind: AnomalyGap, RowID: row.ID, Order: row.QueueOrder, Expected: expected})
			expected = row.QueueOrder + 1
		default:
			expected++
		}

		if _, err := models.Classify(row); err != nil {
			var emptyErr *models.EmptyRowError
			if errors.As(err, &emptyErr) {
				anomalies = append(anomalies, Anomaly{Kind: AnomalyEmptyRow, RowID: row.ID, Order: row.QueueOrder})
			}
		}
	}
	return anomalies
}

type auditStore interface {
	ListQueues(ctx context.Context) ([]models.Queue, error)
	ListRows(ctx context.Context, queueID uuid.UUID) ([]models.QueueRow, error)
}

// Auditor периодически проверяет целостность всех очередей и пишет найденное в лог.
type Auditor struct {
	store  auditStore
	logger *logrus.Logger
}

func NewAuditor(store auditStore, logger *logrus.Logger) *Auditor {
	return &Auditor{store: store, logger: logger}
}

// Run проверяет все очереди и возвращает найденные нарушения по url_name очереди.
func (a *Auditor) Run(ctx context.Context) (map[string][]Anomaly, error) {
	queues, err := a.store.ListQueues(ctx)
	if err != nil {
		return nil, err
	}

	found := make(map[string][]Anomaly)
	for _, queue := range queues {
		rows, err := a.store.ListRows(ctx, queue.ID)
		if err != nil {
			a.logger.WithError(err).WithField("queue", queue.URLName).Error("ошибка загрузки рядов очереди")
			continue
		}

		anomalies := AuditRows(rows)
		for _, anomaly := range anomalies {
			a.logger.WithFields(logrus.Fields{
				"queue_id": queue.ID,
				"queue":    queue.URLName,
				"kind":     string(anomaly.Kind),
				"row_id":   anomaly.RowID,
				"order":    anomaly.Order,
			}).Warn("нарушение целостности очереди: " + anomaly.String())
		}
		if len(anomalies) > 0 {
			found[queue.URLName] = anomalies
		}
	}

	a.logger.WithFields(logrus.Fields{
		"queues":        len(queues),
		"broken_queues": len(found),
	}).Info("проверка целостности очередей завершена")

	return found, nil
}

// InitScheduler запускает cron-планировщик проверки целостности.
// spec: cron-выражение с секундами, например "0 */10 * * * *".
func InitScheduler(ctx context.Context, spec string, auditor *Auditor, logger *logrus.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(spec, func() {
		if _, err := auditor.Run(ctx); err != nil {
			logger.WithError(err).Error("ошибка проверки целостности очередей")
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "tasks: invalid audit schedule %q", spec)
	}

	c.Start()
	logger.WithField("schedule", spec).Info("cron-планировщик запущен")
	return c, nil
}
