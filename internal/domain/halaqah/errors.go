package halaqah

import "errors"

var (
	ErrHalaqahNotFound = errors.New("halaqah not found")
	ErrMusyrifNotFound = errors.New("musyrif not found")
)
