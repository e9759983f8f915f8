package store

import "errors"

// ErrNotFound is returned when a requested row does not exist.
// Callers check it with errors.Is.
var ErrNotFound = errors.New("not found")
