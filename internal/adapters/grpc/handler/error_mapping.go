package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ogurasousui/shift-scheduler/internal/core/assignment"
	"github.com/ogurasousui/shift-scheduler/internal/core/employee"
	"github.com/ogurasousui/shift-scheduler/internal/core/shift"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assignment.ErrRepository):
		return status.Error(codes.Internal, err.Error())
	case errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidName),
		errors.Is(err, employee.ErrInvalidPhone),
		errors.Is(err, shift.ErrInvalidID),
		errors.Is(err, shift.ErrInvalidDate),
		errors.Is(err, shift.ErrInvalidTime),
		errors.Is(err, shift.ErrInvalidTimeRange),
		errors.Is(err, assignment.ErrInvalidEmployeeID),
		errors.Is(err, assignment.ErrInvalidShiftID),
		errors.Is(err, assignment.ErrInvalidMaxDailyHours):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, employee.ErrIDAlreadyExists), errors.Is(err, shift.ErrIDAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, shift.ErrShiftNotFound),
		errors.Is(err, assignment.ErrEmployeeNotFound),
		errors.Is(err, assignment.ErrShiftNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, assignment.ErrPolicyReadOnly):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
