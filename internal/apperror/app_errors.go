package apperror

import "errors"

var (
	ErrInvalidMove          = errors.New("invalid move")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNoMoveAvailable      = errors.New("no move available")
	ErrNotFound             = errors.New("not found")
)
