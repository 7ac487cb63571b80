package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Queue: именованная очередь рядов, url_name служит ключом поиска
type Queue struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	URLName     string     `gorm:"column:url_name;size:255;uniqueIndex;not null"`
	DisplayName string     `gorm:"column:display_name;size:255;not null"`
	CreatedAt   time.Time  `gorm:"not null"`
	Rows        []QueueRow `gorm:"foreignKey:QueueID;constraint:OnDelete:CASCADE"`
}

func (Queue) TableName() string {
	return "queues"
}

func (q *Queue) BeforeCreate(_ *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// QueueRow: ряд очереди с двумя местами (левое и правое)
type QueueRow struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	QueueID         uuid.UUID `gorm:"type:uuid;not null;index:idx_queue_rows_queue_order,priority:1"`
	QueueOrder      int       `gorm:"column:queue_order;not null;index:idx_queue_rows_queue_order,priority:2"`
	LeftPlayerName  *string   // nil, если место свободно
	RightPlayerName *string   // nil, если место свободно
	CreatedAt       time.Time `gorm:"not null"`
}

func (QueueRow) TableName() string {
	return "queue_rows"
}

func (r *QueueRow) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Slot возвращает участника на указанной стороне ряда.
func (r QueueRow) Slot(side Side) *string {
	if side == Left {
		return r.LeftPlayerName
	}
	return r.RightPlayerName
}
