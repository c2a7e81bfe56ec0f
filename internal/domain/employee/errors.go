package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmailExists       = errors.New("email already registered")
	ErrCodeExists        = errors.New("employee code already assigned")
	ErrAllowanceNotFound = errors.New("allowance not found")
)
