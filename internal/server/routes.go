// Package server is the companion HTTP server for the task client. It
// dispatches by path: save, edit, update and delete are separate POST
// endpoints.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the task API under /api.
func RegisterRoutes(r *gin.Engine, h *TaskHandler) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/tasks", h.ListTasks)
		api.POST("/tasks/save", h.SaveTask)
		api.POST("/tasks/edit", h.EditTask)
		api.POST("/tasks/update", h.UpdateTaskStatus)
		api.POST("/tasks/delete", h.DeleteTask)
	}
}

// NewRouter builds a gin engine with recovery, request logging and the
// task routes.
func NewRouter(h *TaskHandler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), ZapLogger(logger))
	RegisterRoutes(r, h)
	return r
}
