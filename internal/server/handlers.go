package server

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmaster/internal/service"
	"taskmaster/internal/store"
)

// MaxTitleLength matches the tasks.title column.
const MaxTitleLength = 255

// taskRequest accepts both key conventions.
type taskRequest struct {
	ID               *int64  `json:"id"`
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	CreatedDate      *string `json:"created_date"`
	CreatedDateCamel *string `json:"createdDate"`
	IsCompleted      *bool   `json:"is_completed"`
	IsCompletedCamel *bool   `json:"isCompleted"`
}

func (r taskRequest) createdDate() string {
	if r.CreatedDate != nil {
		return *r.CreatedDate
	}
	if r.CreatedDateCamel != nil {
		return *r.CreatedDateCamel
	}
	return ""
}

func (r taskRequest) isCompleted() (bool, bool) {
	if r.IsCompleted != nil {
		return *r.IsCompleted, true
	}
	if r.IsCompletedCamel != nil {
		return *r.IsCompletedCamel, true
	}
	return false, false
}

// taskResponse uses camelCase keys; the client accepts both conventions.
type taskResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedDate string `json:"createdDate"`
	IsCompleted bool   `json:"isCompleted"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(t service.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedDate: t.CreatedDate,
		IsCompleted: t.IsCompleted,
	}
}

// TaskHandler serves the task endpoints.
type TaskHandler struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewTaskHandler creates a handler. now supplies the default created_date.
func NewTaskHandler(st store.Store, logger *zap.Logger, now func() time.Time) *TaskHandler {
	if now == nil {
		now = time.Now
	}
	return &TaskHandler{store: st, logger: logger, now: now}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.store.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "failed to list tasks", err)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, toResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TaskHandler) SaveTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid task payload")
		return
	}

	title, ok := validTitle(req.Title)
	if !ok {
		badRequest(c, "invalid title")
		return
	}

	created := req.createdDate()
	if created == "" {
		created = h.now().Format(service.DateLayout)
	} else if _, err := time.Parse(service.DateLayout, created); err != nil {
		badRequest(c, "invalid created_date")
		return
	}

	completed, _ := req.isCompleted()
	task, err := h.store.Create(c.Request.Context(), service.NewTask{
		Title:       title,
		Description: deref(req.Description),
		CreatedDate: created,
		IsCompleted: completed,
	})
	if err != nil {
		h.internalError(c, "failed to save task", err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(task))
}

func (h *TaskHandler) EditTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == nil {
		badRequest(c, "invalid task payload")
		return
	}

	title, ok := validTitle(req.Title)
	if !ok {
		badRequest(c, "invalid title")
		return
	}

	ctx := c.Request.Context()
	existing, err := h.store.Get(ctx, *req.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "Task not found"})
			return
		}
		h.internalError(c, "failed to load task", err)
		return
	}

	existing.Title = title
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if completed, ok := req.isCompleted(); ok {
		existing.IsCompleted = completed
	}

	task, err := h.store.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: "Task not found"})
			return
		}
		h.internalError(c, "failed to edit task", err)
		return
	}

	c.JSON(http.StatusOK, toResponse(task))
}

func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == nil {
		badRequest(c, "invalid status payload")
		return
	}
	completed, ok := req.isCompleted()
	if !ok {
		badRequest(c, "invalid status payload")
		return
	}

	updated, err := h.store.SetCompletion(c.Request.Context(), *req.ID, completed)
	if err != nil {
		h.internalError(c, "failed to update task status", err)
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, successResponse{Success: false, Message: "Task not found"})
		return
	}
	c.JSON(http.StatusOK, successResponse{Success: true, Message: "Task updated successfully"})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == nil {
		badRequest(c, "invalid delete payload")
		return
	}

	deleted, err := h.store.Delete(c.Request.Context(), *req.ID)
	if err != nil {
		h.internalError(c, "failed to delete task", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, successResponse{Success: false, Message: "Task not found"})
		return
	}
	c.JSON(http.StatusOK, successResponse{Success: true, Message: "Task deleted successfully"})
}

func (h *TaskHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *TaskHandler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, errorResponse{Error: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func validTitle(title *string) (string, bool) {
	if title == nil {
		return "", false
	}
	t := strings.TrimSpace(*title)
	if t == "" || utf8.RuneCountInString(t) > MaxTitleLength {
		return "", false
	}
	return t, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
