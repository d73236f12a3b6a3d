package assignment

import "errors"

var (
	ErrInvalidEmployeeID    = errors.New("assignment: invalid employee id")
	ErrInvalidShiftID       = errors.New("assignment: invalid shift id")
	ErrInvalidMaxDailyHours = errors.New("assignment: max daily hours must be greater than 0 and at most 24")
	ErrEmployeeNotFound     = errors.New("assignment: employee not found")
	ErrShiftNotFound        = errors.New("assignment: shift not found")
	ErrAlreadyAssigned      = errors.New("assignment: employee already assigned to shift")
	ErrDailyLimitExceeded   = errors.New("assignment: daily hour limit exceeded")
	ErrInvalidShiftTime     = errors.New("assignment: shift end time is not after start time")
	ErrAssignmentNotFound   = errors.New("assignment: not found")
	ErrPolicyReadOnly       = errors.New("assignment: policy source is read-only")
	ErrRepository           = errors.New("assignment: repository error")
	ErrUnknownOutcome       = errors.New("assignment: unknown outcome")
)
