package testutil

import "errors"

// ErrNotFound is returned when a task is not found.
var ErrNotFound = errors.New("not found")

// ErrBackend is a generic injected backend failure.
var ErrBackend = errors.New("HTTP error, status 500")
