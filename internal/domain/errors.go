package domain

import "errors"

// Common domain errors. Repositories translate driver-level failures into
// these so usecases can map them to the HTTP error taxonomy.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate entry")
)
