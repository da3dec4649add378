package errors

import "errors"

// Not-found conditions surface as 404; every other error is a 500.
var (
	ErrModelNotFound = errors.New("Model not found")
	ErrNotFound      = errors.New("Not found")
)
