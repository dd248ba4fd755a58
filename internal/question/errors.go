package question

import "errors"

var (
	// ErrNotFound covers empty result sets and unknown ids.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidArgument is returned for missing or falsy required parameters.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOperationFailed wraps persistence failures during search, create and delete.
	// The HTTP layer reports it as 405 for wire compatibility.
	ErrOperationFailed = errors.New("operation failed")
)
