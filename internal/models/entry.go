package models

import (
	"time"

	"github.com/google/uuid"
)

// Players описывает состояние заполненности ряда. Реализации: LeftOnly, RightOnly, Both.
type Players interface {
	isPlayers()
}

type LeftOnly struct {
	Name string
}

type RightOnly struct {
	Name string
}

type Both struct {
	Left  string
	Right string
}

func (LeftOnly) isPlayers()  {}
func (RightOnly) isPlayers() {}
func (Both) isPlayers()      {}

// Entry: классифицированный ряд очереди для чтения
type Entry struct {
	ID        uuid.UUID
	QueueID   uuid.UUID
	Order     int
	Players   Players
	CreatedAt time.Time
}

// Classify переводит сырой ряд в Entry. Ряд без участников считается
// нарушением целостности и возвращается как *EmptyRowError.
func Classify(row QueueRow) (Entry, error) {
	entry := Entry{
		ID:        row.ID,
		QueueID:   row.QueueID,
		Order:     row.QueueOrder,
		CreatedAt: row.CreatedAt,
	}

	switch {
	case row.LeftPlayerName != nil && row.RightPlayerName != nil:
		entry.Players = Both{Left: *row.LeftPlayerName, Right: *row.RightPlayerName}
	case row.LeftPlayerName != nil:
		entry.Players = LeftOnly{Name: *row.LeftPlayerName}
	case row.RightPlayerName != nil:
		entry.Players = RightOnly{Name: *row.RightPlayerName}
	default:
		return Entry{}, &EmptyRowError{RowID: row.ID, QueueID: row.QueueID, Order: row.QueueOrder}
	}

	return entry, nil
}

// Slots раскладывает состояние ряда обратно на левое и правое место.
func Slots(p Players) (left, right *string) {
	switch v := p.(type) {
	case LeftOnly:
		return &v.Name, nil
	case RightOnly:
		return nil, &v.Name
	case Both:
		return &v.Left, &v.Right
	}
	return nil, nil
}
