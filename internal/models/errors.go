package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("url name already taken")
	ErrStore              = errors.New("store unavailable")
	ErrInvalidSide        = errors.New("invalid side")
	ErrInvalidParticipant = errors.New("participant name must not be empty")
	ErrInvalidQueueName   = errors.New("invalid queue name")
)

// OccupiedError: место в ряду уже занято
type OccupiedError struct {
	RowID uuid.UUID
	Order int
	Side  Side
}

func (e *OccupiedError) Error() string {
	return fmt.Sprintf("player slot already occupied. row: %s, order: %d, side: %s", e.RowID, e.Order, e.Side)
}

// InvalidOrderError: запрошенный порядок не совпадает с хвостом очереди
type InvalidOrderError struct {
	Expected int
	Got      int
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("invalid order. expected: %d, got: %d", e.Expected, e.Got)
}

// EmptyRowError: в сохранённом ряду нет ни одного участника
type EmptyRowError struct {
	RowID   uuid.UUID
	QueueID uuid.UUID
	Order   int
}

func (e *EmptyRowError) Error() string {
	return fmt.Sprintf("row has no players. row: %s, queue: %s, order: %d", e.RowID, e.QueueID, e.Order)
}

// StoreError оборачивает ошибки базы и пула соединений.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}
