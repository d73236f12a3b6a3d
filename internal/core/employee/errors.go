package employee

import "errors"

var (
	ErrInvalidID        = errors.New("employee: invalid id")
	ErrInvalidName      = errors.New("employee: invalid name")
	ErrInvalidPhone     = errors.New("employee: invalid phone")
	ErrEmployeeNotFound = errors.New("employee: not found")
	ErrIDAlreadyExists  = errors.New("employee: id already exists")
)
