package store

import (
	"context"
	"sort"
	"sync"

	"taskmaster/internal/service"
)

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]service.Task
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store. IDs start at 1.
func NewMemory() *Memory {
	return &Memory{nextID: 1, tasks: make(map[int64]service.Task)}
}

func (m *Memory) List(ctx context.Context) ([]service.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]service.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedDate != result[j].CreatedDate {
			return result[i].CreatedDate > result[j].CreatedDate
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *Memory) Get(ctx context.Context, id int64) (service.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tasks[id]
	if !ok {
		return service.Task{}, ErrNotFound
	}
	return t, nil
}

func (m *Memory) Create(ctx context.Context, task service.NewTask) (service.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := task.WithID(m.nextID)
	m.tasks[created.ID] = created
	m.nextID++
	return created, nil
}

func (m *Memory) Update(ctx context.Context, task service.Task) (service.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[task.ID]
	if !ok {
		return service.Task{}, ErrNotFound
	}
	existing.Title = task.Title
	existing.Description = task.Description
	existing.IsCompleted = task.IsCompleted
	m.tasks[task.ID] = existing
	return existing, nil
}

func (m *Memory) SetCompletion(ctx context.Context, id int64, completed bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return false, nil
	}
	t.IsCompleted = completed
	m.tasks[id] = t
	return true, nil
}

func (m *Memory) Delete(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return false, nil
	}
	delete(m.tasks, id)
	return true, nil
}

func (m *Memory) Close() error { return nil }
