package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrSourceNotFound        = errors.New("source not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
