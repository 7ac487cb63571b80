package response

import (
	"time"

	"itq/internal/models"

	"github.com/google/uuid"
)

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Ошибка валидации данных
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: invalid order. expected: 1, got: 0
	Details string `json:"details,omitempty"`
}

// QueueResponse представляет очередь в ответах API
type QueueResponse struct {
	ID          uuid.UUID `json:"id"`
	URLName     string    `json:"url_name" example:"pool"`
	DisplayName string    `json:"display_name" example:"Бильярд"`
	CreatedAt   time.Time `json:"created_at"`
}

// EntryResponse представляет ряд очереди. State: left_only, right_only или both
type EntryResponse struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order" example:"0"`
	State string    `json:"state" example:"left_only"`
	Left  *string   `json:"left"`
	Right *string   `json:"right"`
}

// RowResponse возвращается после добавления участника
type RowResponse struct {
	RowID uuid.UUID `json:"row_id"`
	// true, если создан новый ряд; false, если заполнено место в существующем
	Created bool `json:"created"`
}

func NewQueueResponse(q models.Queue) QueueResponse {
	return QueueResponse{
		ID:          q.ID,
		URLName:     q.URLName,
		DisplayName: q.DisplayName,
		CreatedAt:   q.CreatedAt,
	}
}

func NewEntryResponse(e models.Entry) EntryResponse {
	left, right := models.Slots(e.Players)
	resp := EntryResponse{ID: e.ID, Order: e.Order, Left: left, Right: right}
	switch e.Players.(type) {
	case models.LeftOnly:
		resp.State = "left_only"
	case models.RightOnly:
		resp.State = "right_only"
	case models.Both:
		resp.State = "both"
	}
	return resp
}
