package restapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskmaster/internal/service"
)

// rawTask accepts both key conventions the server may use.
// Pointer fields distinguish absent (or null) from zero values.
type rawTask struct {
	ID               *int64    `json:"id"`
	Title            *string   `json:"title"`
	Description      *string   `json:"description"`
	CreatedDate      *string   `json:"created_date"`
	CreatedDateCamel *string   `json:"createdDate"`
	IsCompleted      *flexBool `json:"is_completed"`
	IsCompletedCamel *flexBool `json:"isCompleted"`
}

// taskPayload is the canonical encoding sent to the server.
type taskPayload struct {
	ID          *int64 `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedDate string `json:"created_date"`
	IsCompleted bool   `json:"is_completed"`
}

type statusPayload struct {
	ID          int64 `json:"id"`
	IsCompleted bool  `json:"is_completed"`
}

type idPayload struct {
	ID int64 `json:"id"`
}

type successReply struct {
	Success *bool `json:"success"`
}

// flexBool decodes JSON booleans, 0/1 and their string forms.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	switch s {
	case "true", "1":
		*b = true
	case "false", "0":
		*b = false
	default:
		return fmt.Errorf("invalid boolean: %s", data)
	}
	return nil
}

// DecodeTask decodes a task object from either key convention into its
// normalized form. id and title are required; description, created_date and
// is_completed default to "", "" and false. When both spellings of a field
// are present the snake_case one wins.
func DecodeTask(data []byte) (service.Task, error) {
	var raw rawTask
	if err := json.Unmarshal(data, &raw); err != nil {
		return service.Task{}, err
	}
	if raw.ID == nil {
		return service.Task{}, errors.New("missing field: id")
	}
	if raw.Title == nil {
		return service.Task{}, errors.New("missing field: title")
	}

	task := service.Task{
		ID:          *raw.ID,
		Title:       *raw.Title,
		Description: deref(raw.Description),
		CreatedDate: deref(firstString(raw.CreatedDate, raw.CreatedDateCamel)),
	}
	if completed := firstBool(raw.IsCompleted, raw.IsCompletedCamel); completed != nil {
		task.IsCompleted = bool(*completed)
	}

	if task.CreatedDate != "" {
		if _, err := time.Parse(service.DateLayout, task.CreatedDate); err != nil {
			return service.Task{}, fmt.Errorf("invalid created_date: %q", task.CreatedDate)
		}
	}
	return task, nil
}

// DecodeTasks decodes a JSON array of task objects. A single bad element
// fails the whole array.
func DecodeTasks(data []byte) ([]service.Task, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return nil, errors.New("expected a JSON array")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	tasks := make([]service.Task, 0, len(items))
	for i, item := range items {
		task, err := DecodeTask(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// EncodeTask encodes a task with the canonical snake_case keys.
// A zero ID is omitted.
func EncodeTask(task service.Task) ([]byte, error) {
	return json.Marshal(toPayload(task))
}

func toPayload(task service.Task) taskPayload {
	p := taskPayload{
		Title:       task.Title,
		Description: task.Description,
		CreatedDate: task.CreatedDate,
		IsCompleted: task.IsCompleted,
	}
	if task.ID != 0 {
		id := task.ID
		p.ID = &id
	}
	return p
}

func decodeSuccess(data []byte) (bool, error) {
	var reply successReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return false, err
	}
	if reply.Success == nil {
		return false, errors.New("missing field: success")
	}
	return *reply.Success, nil
}

func firstString(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstBool(values ...*flexBool) *flexBool {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
