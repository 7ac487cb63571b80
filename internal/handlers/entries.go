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

// PlayerRequest описывает участника, которого ставят на место в ряду с порядком Order
type PlayerRequest struct {
	Order  *int   `json:"order" binding:"required,min=0" example:"0"`
	Side   string `json:"side" binding:"required,oneof=left right" example:"left"`
	Player string `json:"player" binding:"required,max=255" example:"Alice"`
}

// SlotRequest: участник для конкретного ряда, сторона берётся из пути
type SlotRequest struct {
	Player string `json:"player" binding:"required,max=255" example:"Bob"`
}

// ListEntriesHandler возвращает ряды очереди
// @Summary		Ряды очереди
// @Description	Возвращает ряды очереди по возрастанию порядка. Повреждённые ряды пропускаются
// @Tags			entries
// @Produce		json
// @Param			url_name	path		string	true	"url_name очереди"
// @Success		200			{array}		response.EntryResponse	"Ряды очереди"
// @Failure		404			{object}	response.ErrorResponse	"Очередь не найдена (QUEUE_NOT_FOUND)"
// @Failure		500			{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queues/{url_name}/entries [get]
func (h *QueueHandler) ListEntriesHandler(c *gin.Context) {
	queue, ok := h.loadQueue(c)
	if !ok {
		return
	}

	entries, err := h.engine.Entries(c.Request.Context(), queue.ID)
	if err != nil {
		h.writeError(c, err, "QUEUE_NOT_FOUND", "Очередь не найдена")
		return
	}

	result := make([]response.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, response.NewEntryResponse(entry))
	}
	c.JSON(http.StatusOK, result)
}

// AddPlayerHandler ставит участника в ряд с указанным порядком
// @Summary		Добавление участника
// @Description	Если ряд с order существует, занимает в нём место side, иначе добавляет новый ряд в конец очереди
// @Tags			entries
// @Accept			json
// @Produce		json
// @Param			url_name	path		string					true	"url_name очереди"
// @Param			player		body		PlayerRequest			true	"Участник"
// @Success		200			{object}	response.RowResponse	"Место в существующем ряду занято"
// @Success		201			{object}	response.RowResponse	"Создан новый ряд"
// @Failure		400			{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404			{object}	response.ErrorResponse	"Очередь не найдена (QUEUE_NOT_FOUND)"
// @Failure		409			{object}	response.ErrorResponse	"Место занято (SLOT_OCCUPIED) или неверный порядок (INVALID_ORDER)"
// @Failure		500			{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queues/{url_name}/entries [post]
func (h *QueueHandler) AddPlayerHandler(c *gin.Context) {
	queue, ok := h.loadQueue(c)
	if !ok {
		return
	}

	req, side, ok := bindPlayer(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	rowID, created, err := h.engine.AddParticipant(ctx, queue.ID, *req.Order, side, req.Player)
	if err != nil {
		h.writeError(c, err, "QUEUE_NOT_FOUND", "Очередь не найдена")
		return
	}

	status, event := http.StatusOK, ws.EventRowUpdated
	if created {
		status, event = http.StatusCreated, ws.EventRowCreated
	}
	h.notify(ctx, event, rowID)

	c.JSON(status, response.RowResponse{RowID: rowID, Created: created})
}

// AppendRowHandler добавляет новый ряд в конец очереди
// @Summary		Новый ряд
// @Description	order должен быть равен количеству рядов в очереди, иначе INVALID_ORDER
// @Tags			entries
// @Accept			json
// @Produce		json
// @Param			url_name	path		string					true	"url_name очереди"
// @Param			player		body		PlayerRequest			true	"Участник"
// @Success		201			{object}	response.RowResponse	"Ряд создан"
// @Failure		400			{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404			{object}	response.ErrorResponse	"Очередь не найдена (QUEUE_NOT_FOUND)"
// @Failure		409			{object}	response.ErrorResponse	"Неверный порядок (INVALID_ORDER)"
// @Failure		500			{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/queues/{url_name}/rows [post]
func (h *QueueHandler) AppendRowHandler(c *gin.Context) {
	queue, ok := h.loadQueue(c)
	if !ok {
		return
	}

	req, side, ok := bindPlayer(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	rowID, err := h.engine.AppendNewRow(ctx, queue.ID, *req.Order, side, req.Player)
	if err != nil {
		h.writeError(c, err, "QUEUE_NOT_FOUND", "Очередь не найдена")
		return
	}
	h.notify(ctx, ws.EventRowCreated, rowID)

	c.JSON(http.StatusCreated, response.RowResponse{RowID: rowID, Created: true})
}

// AssignSlotHandler занимает место в существующем ряду
// @Summary		Занять место
// @Tags			entries
// @Accept			json
// @Produce		json
// @Param			row_id	path		string					true	"ID ряда"
// @Param			side	path		string					true	"Сторона"	Enums(left, right)
// @Param			player	body		SlotRequest				true	"Участник"
// @Success		200		{object}	response.RowResponse	"Место занято"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404		{object}	response.ErrorResponse	"Ряд не найден (ROW_NOT_FOUND)"
// @Failure		409		{object}	response.ErrorResponse	"Место занято (SLOT_OCCUPIED)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/rows/{row_id}/{side} [put]
func (h *QueueHandler) AssignSlotHandler(c *gin.Context) {
	rowID, err := uuid.Parse(c.Param("row_id"))
	if err != nil {
		validationError(c, errors.Wrap(err, "row_id"))
		return
	}
	side, err := models.ParseSide(c.Param("side"))
	if err != nil {
		validationError(c, err)
		return
	}

	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.engine.AssignToRow(ctx, rowID, side, req.Player); err != nil {
		h.writeError(c, err, "ROW_NOT_FOUND", "Ряд не найден")
		return
	}

	h.notify(ctx, ws.EventRowUpdated, rowID)

	c.JSON(http.StatusOK, response.RowResponse{RowID: rowID, Created: false})
}

func bindPlayer(c *gin.Context) (PlayerRequest, models.Side, bool) {
	var req PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return req, 0, false
	}
	side, err := models.ParseSide(req.Side)
	if err != nil {
		validationError(c, err)
		return req, 0, false
	}
	return req, side, true
}

// notify рассылает подписчикам очереди актуальное состояние ряда.
func (h *QueueHandler) notify(ctx context.Context, event string, rowID uuid.UUID) {
	row, err := h.store.GetRow(ctx, rowID)
	if err != nil {
		h.logger.WithError(err).WithField("row_id", rowID).Warn("не удалось загрузить ряд для оповещения")
		return
	}
	entry, err := models.Classify(*row)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"row_id":   row.ID,
			"queue_id": row.QueueID,
		}).Warn("ряд не отправлен подписчикам")
		return
	}
	h.hub.BroadcastWSMessage(ws.WSMessage{
		EventType: event,
		QueueID:   row.QueueID.String(),
		Data:      response.NewEntryResponse(entry),
	})
}
