// Package store holds the task persistence backends used by the
// companion server.
package store

import (
	"context"
	"errors"

	"taskmaster/internal/service"
)

// ErrNotFound is returned when no task has the requested ID.
var ErrNotFound = errors.New("task not found")

// Store persists tasks. List returns tasks newest first
// (created_date descending, then ID descending).
type Store interface {
	List(ctx context.Context) ([]service.Task, error)
	Get(ctx context.Context, id int64) (service.Task, error)
	Create(ctx context.Context, task service.NewTask) (service.Task, error)
	// Update replaces title, description and completion flag.
	// created_date is never changed.
	Update(ctx context.Context, task service.Task) (service.Task, error)
	// SetCompletion reports false when the task does not exist.
	SetCompletion(ctx context.Context, id int64, completed bool) (bool, error)
	// Delete reports false when the task does not exist.
	Delete(ctx context.Context, id int64) (bool, error)
	Close() error
}
