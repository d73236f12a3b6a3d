package shift

import "errors"

var (
	ErrInvalidID        = errors.New("shift: invalid id")
	ErrInvalidDate      = errors.New("shift: invalid date")
	ErrInvalidTime      = errors.New("shift: invalid time of day")
	ErrInvalidTimeRange = errors.New("shift: end time must be after start time")
	ErrShiftNotFound    = errors.New("shift: not found")
	ErrIDAlreadyExists  = errors.New("shift: id already exists")
)
