// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All calls to the task server go through this interface.
// Commands never import the HTTP client directly.
type Service interface {
	// ListTasks returns every task in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask persists a new task and returns it with its assigned ID.
	CreateTask(ctx context.Context, task NewTask) (Task, error)

	// UpdateTask replaces a stored task with the given record.
	UpdateTask(ctx context.Context, task Task) (Task, error)

	// SetCompletion sets the completion flag of a task.
	// Returns the success flag reported by the backend.
	SetCompletion(ctx context.Context, id int64, completed bool) (bool, error)

	// DeleteTask deletes a task.
	// Returns the success flag reported by the backend.
	DeleteTask(ctx context.Context, id int64) (bool, error)
}
