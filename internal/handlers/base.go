package handlers

import (
	"context"
	"net/http"

	"itq/internal/models"
	"itq/internal/response"
	"itq/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type queueStore interface {
	GetQueueByURLName(ctx context.Context, urlName string) (*models.Queue, error)
	AddQueue(ctx context.Context, displayName, urlName string) (*models.Queue, error)
	DeleteQueue(ctx context.Context, id uuid.UUID) error
	GetRow(ctx context.Context, id uuid.UUID) (*models.QueueRow, error)
}

type slotEngine interface {
	AssignToRow(ctx context.Context, rowID uuid.UUID, side models.Side, participant string) (uuid.UUID, error)
	AppendNewRow(ctx context.Context, queueID uuid.UUID, order int, side models.Side, participant string) (uuid.UUID, error)
	AddParticipant(ctx context.Context, queueID uuid.UUID, order int, side models.Side, participant string) (uuid.UUID, bool, error)
	Entries(ctx context.Context, queueID uuid.UUID) ([]models.Entry, error)
}

type queueDirectory interface {
	ListQueues(ctx context.Context) ([]models.Queue, error)
	Invalidate(ctx context.Context)
}

type broadcaster interface {
	BroadcastWSMessage(msg ws.WSMessage)
	Serve(w http.ResponseWriter, r *http.Request, queueID string)
}

// QueueHandler обслуживает HTTP API очередей
type QueueHandler struct {
	store     queueStore
	engine    slotEngine
	directory queueDirectory
	hub       broadcaster
	logger    *logrus.Logger
}

func New(store queueStore, engine slotEngine, directory queueDirectory, hub broadcaster, logger *logrus.Logger) *QueueHandler {
	return &QueueHandler{
		store:     store,
		engine:    engine,
		directory: directory,
		hub:       hub,
		logger:    logger,
	}
}

// writeError переводит ошибки ядра в HTTP-ответ.
func (h *QueueHandler) writeError(c *gin.Context, err error, notFoundCode, notFoundMessage string) {
	var (
		occupied     *models.OccupiedError
		invalidOrder *models.InvalidOrderError
	)

	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    notFoundCode,
			Message: notFoundMessage,
		})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Code:    "URL_NAME_EXISTS",
			Message: "Очередь с таким url_name уже существует",
			Details: err.Error(),
		})
	case errors.As(err, &occupied):
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Code:    "SLOT_OCCUPIED",
			Message: "Это место уже занято",
			Details: occupied.Error(),
		})
	case errors.As(err, &invalidOrder):
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Code:    "INVALID_ORDER",
			Message: "Очередь изменилась, обновите страницу",
			Details: invalidOrder.Error(),
		})
	case errors.Is(err, models.ErrInvalidParticipant), errors.Is(err, models.ErrInvalidSide),
		errors.Is(err, models.ErrInvalidQueueName):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
	default:
		h.logger.WithError(err).WithField("path", c.FullPath()).Error("ошибка обработки запроса")
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка сервера",
			Details: err.Error(),
		})
	}
}

func validationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: "Ошибка валидации данных",
		Details: err.Error(),
	})
}
