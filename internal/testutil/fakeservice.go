// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"taskmaster/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int64

	// Error injection for testing
	ListTasksErr     error
	CreateTaskErr    error
	UpdateTaskErr    error
	SetCompletionErr error
	DeleteTaskErr    error

	// Reject makes SetCompletion and DeleteTask report success=false.
	Reject bool

	// Calls counts invocations per method name.
	Calls map[string]int
}

// NewFakeService creates an empty FakeService. IDs start at 1.
func NewFakeService() *FakeService {
	return &FakeService{nextID: 1, Calls: make(map[string]int)}
}

// AddTask adds a stored task and returns it.
func (f *FakeService) AddTask(title, createdDate string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := service.Task{
		ID:          f.nextID,
		Title:       title,
		CreatedDate: createdDate,
		IsCompleted: completed,
	}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t
}

// Task returns a stored task by ID.
func (f *FakeService) Task(id int64) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// Tasks returns a copy of all stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

func (f *FakeService) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[name]++
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	created := task.WithID(f.nextID)
	f.nextID++
	f.tasks = append(f.tasks, created)
	return created, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, task service.Task) (service.Task, error) {
	f.record("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == task.ID {
			f.tasks[i] = task
			return task, nil
		}
	}
	return service.Task{}, ErrNotFound
}

// SetCompletion implements service.Service.
func (f *FakeService) SetCompletion(ctx context.Context, id int64, completed bool) (bool, error) {
	f.record("SetCompletion")
	if f.SetCompletionErr != nil {
		return false, f.SetCompletionErr
	}
	if f.Reject {
		return false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].IsCompleted = completed
			return true, nil
		}
	}
	return false, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int64) (bool, error) {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return false, f.DeleteTaskErr
	}
	if f.Reject {
		return false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
