package repository

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrInvalidInput = errors.New("invalid input data")
	// ErrNotAllowed means the order's current status forbids the mutation.
	ErrNotAllowed = errors.New("operation not allowed in current status")
)
