package models

import "errors"

// Domain error taxonomy. Handlers map these to HTTP status codes at the
// response boundary; everything else surfaces as a 500.
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
)
