package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidRole      = errors.New("invalid employee role")
	ErrPhoneExists      = errors.New("phone number already registered")
)
