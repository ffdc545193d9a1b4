package employee

import "errors"

var (
	ErrInvalidFirstName            = errors.New("employee: invalid first name")
	ErrInvalidLastName             = errors.New("employee: invalid last name")
	ErrInvalidDraft                = errors.New("employee: draft is required")
	ErrInvalidDirectReport         = errors.New("employee: invalid direct report")
	ErrEmployeeNotFound            = errors.New("employee: not found")
	ErrEmployeeAlreadyExists       = errors.New("employee: id already exists")
	ErrDirectReportNotFound        = errors.New("employee: direct report not found")
	ErrDirectReportAlreadyAssigned = errors.New("employee: direct report already has a manager")
)
