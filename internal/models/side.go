package models

import (
	"strings"

	"github.com/pkg/errors"
)

// Side: одна из двух половин ряда
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

func (s Side) Valid() bool {
	return s == Left || s == Right
}

// ParseSide разбирает текстовое представление стороны ("left"/"right").
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, errors.Wrapf(ErrInvalidSide, "%q", s)
}

func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.Wrapf(ErrInvalidSide, "%d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	parsed, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
