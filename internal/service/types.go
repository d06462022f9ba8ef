// Package service defines the backend-agnostic interface for task operations.
package service

// DateLayout is the wire format of Task.CreatedDate.
const DateLayout = "2006-01-02"

// Task is a single task record in its normalized form.
type Task struct {
	ID          int64 // 0 until the server assigns one
	Title       string
	Description string
	CreatedDate string // YYYY-MM-DD, immutable after creation
	IsCompleted bool
}

// NewTask is a task that has not been persisted yet.
type NewTask struct {
	Title       string
	Description string
	CreatedDate string
	IsCompleted bool
}

// WithID returns the persisted form of t.
func (t NewTask) WithID(id int64) Task {
	return Task{
		ID:          id,
		Title:       t.Title,
		Description: t.Description,
		CreatedDate: t.CreatedDate,
		IsCompleted: t.IsCompleted,
	}
}
