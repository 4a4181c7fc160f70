package repositories

import "errors"

// ErrNotFound is returned when a record does not exist or is soft-deleted
// under the requested visibility.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint would be violated.
var ErrDuplicate = errors.New("duplicate record")
