// Package errors holds the sentinel errors shared by the storage, service
// and transport layers. Callers compare with errors.Is.
package errors

import (
	"fmt"
)

var (
	ErrNotFound     = fmt.Errorf("not found")
	ErrDuplicatedID = fmt.Errorf("duplicated id")
	ErrOutOfRange   = fmt.Errorf("out of range")
	ErrInvalidInput = fmt.Errorf("invalid input")
)
