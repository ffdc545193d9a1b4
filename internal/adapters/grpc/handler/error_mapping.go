package handler

import (
	"errors"

	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/compensation"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/reporting"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, employee.ErrInvalidFirstName),
		errors.Is(err, employee.ErrInvalidLastName),
		errors.Is(err, employee.ErrInvalidDraft),
		errors.Is(err, employee.ErrInvalidDirectReport),
		errors.Is(err, compensation.ErrInvalidSalary),
		errors.Is(err, compensation.ErrInvalidEffectiveDate):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, employee.ErrEmployeeAlreadyExists),
		errors.Is(err, employee.ErrDirectReportAlreadyAssigned),
		errors.Is(err, compensation.ErrCompensationAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, employee.ErrDirectReportNotFound),
		errors.Is(err, compensation.ErrCompensationNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, reporting.ErrInvalidHierarchy):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
