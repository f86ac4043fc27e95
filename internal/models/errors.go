package models

import "errors"

// ErrNotFound is returned when a lookup by id yields nothing.
var ErrNotFound = errors.New("not found")

// ErrInvalidReference is returned when a show points at a venue or artist
// that does not exist.
var ErrInvalidReference = errors.New("invalid reference")

// ErrValidation marks input rejected before any mutation.
var ErrValidation = errors.New("validation failed")
