package handlers

import (
	"net/http"

	"itq/internal/models"
	"itq/internal/response"
	"itq/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type AddQueueRequest struct {
	DisplayName string `json:"display_name" binding:"required,max=255"`
	URLName     string `json:"url_name" binding:"required,max=255"`
}

// ListQueuesHandler возвращает каталог очередей
// @Summary		Список очередей
// @Description	Возвращает все очереди, результат кэшируется в Redis
// @Tags			queue
// @Produce		json
// @Success		200	{array}		response.QueueResponse	"Каталог очередей"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queues [get]
func (h *QueueHandler) ListQueuesHandler(c *gin.Context) {
	queues, err := h.directory.ListQueues(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "QUEUE_NOT_FOUND", "Очередь не найдена")
		return
	}

	result := make([]response.QueueResponse, 0, len(queues))
	for _, q := range queues {
		result = append(result, response.NewQueueResponse(q))
	}
	c.JSON(http.StatusOK, result)
}

// AddQueueHandler создаёт очередь
// @Summary		Создание очереди
// @Description	Создаёт очередь с уникальным url_name
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			queue	body		AddQueueRequest			true	"Данные очереди"
// @Success		201		{object}	response.QueueResponse	"Очередь создана"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		409		{object}	response.ErrorResponse	"url_name занят (URL_NAME_EXISTS)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queues [post]
func (h *QueueHandler) AddQueueHandler(c *gin.Context) {
	var req AddQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	ctx := c.Request.Context()
	queue, err := h.store.AddQueue(ctx, req.DisplayName, req.URLName)
	if err != nil {
		h.writeError(c, err, "QUEUE_NOT_FOUND", "Очередь не найдена")
		return
	}
	h.directory.Invalidate(ctx)

	c.JSON(http.StatusCreated, response.NewQueueResponse(*queue))
}

// GetQueueHandler возвращает очередь по url_name
// @Summary		Получение очереди
// @Tags			queue
// @Produce		json
// @Param			url_name	path		string	true	"url_name очереди"
// @Success		200			{object}	response.QueueResponse	"Очередь"
// @Failure		404			{object}	response.ErrorResponse	"Очередь не найдена (QUEUE_NOT_FOUND)"
// @Failure		500			{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queues/{url_name} [get]
func (h *QueueHandler) GetQueueHandler(c *gin.Context) {
	queue, ok := h.loadQueue(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response.NewQueueResponse(*queue))
}

// DeleteQueueHandler удаляет очередь вместе с рядами
// @Summary		Удаление очереди
// @Description	Удаляет очередь и все её ряды. Удаление отсутствующей очереди не считается ошибкой
// @Tags			queue
// @Param			url_name	path	string	true	"url_name очереди"
// @Success		204			"Очередь удалена"
// @Failure		500			{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queues/{url_name} [delete]
func (h *QueueHandler) DeleteQueueHandler(c *gin.Context) {
	ctx := c.Request.Context()
	queue, err := h.store.GetQueueByURLName(ctx, c.Param("url_name"))
	if errors.Is(err, models.ErrNotFound) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		h.writeError(c, err, "QUEUE_NOT_FOUND", "Очередь не найдена")
		return
	}

	if err := h.store.DeleteQueue(ctx, queue.ID); err != nil {
		h.writeError(c, err, "QUEUE_NOT_FOUND", "Очередь не найдена")
		return
	}
	h.directory.Invalidate(ctx)

	h.hub.BroadcastWSMessage(ws.WSMessage{
		EventType: ws.EventQueueDeleted,
		QueueID:   queue.ID.String(),
	})

	c.Status(http.StatusNoContent)
}

// QueueWebSocketHandler подписывает клиента на события очереди.
// URL-пример: /api/queues/{url_name}/ws
func (h *QueueHandler) QueueWebSocketHandler(c *gin.Context) {
	queue, ok := h.loadQueue(c)
	if !ok {
		return
	}
	h.hub.Serve(c.Writer, c.Request, queue.ID.String())
}

func (h *QueueHandler) loadQueue(c *gin.Context) (*models.Queue, bool) {
	queue, err := h.store.GetQueueByURLName(c.Request.Context(), c.Param("url_name"))
	if err != nil {
		h.writeError(c, err, "QUEUE_NOT_FOUND", "Очередь не найдена")
		return nil, false
	}
	return queue, true
}
