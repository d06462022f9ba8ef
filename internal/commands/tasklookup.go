package commands

import (
	"context"
	"errors"
	"fmt"

	"taskmaster/internal/service"
)

// errTaskNotFound is returned by findTask when no task has the ID.
var errTaskNotFound = errors.New("task not found")

// findTask fetches all tasks and returns the one with the given ID.
// The server has no single-task endpoint.
func findTask(ctx context.Context, svc service.Service, id int64) (service.Task, error) {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return service.Task{}, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, fmt.Errorf("%w: %d", errTaskNotFound, id)
}
