// Package handlers exposes the task list over HTTP.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/tasks"
)

const taskNameField = "task_name"

// MessageResponse is returned by POST /add and POST /remove.
type MessageResponse struct {
	Message string   `json:"message" example:"Task 'Write Jenkinsfile' added successfully"`
	Removed *bool    `json:"removed,omitempty"`
	Tasks   []string `json:"tasks"`
}

// TasksResponse is returned by GET /tasks.
type TasksResponse struct {
	Tasks []string `json:"tasks"`
}

// ErrorResponse carries a client or server error.
type ErrorResponse struct {
	Error string `json:"error" example:"task_name is required"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}

// TaskHandler serves the task list endpoints.
type TaskHandler struct {
	store tasks.Store
	log   logrus.FieldLogger
}

// NewTaskHandler returns a handler backed by store.
func NewTaskHandler(store tasks.Store, log logrus.FieldLogger) *TaskHandler {
	return &TaskHandler{store: store, log: log}
}

// Register mounts the task routes on r.
func (h *TaskHandler) Register(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.GET("/tasks", h.ListTasks)
	r.POST("/add", h.AddTask)
	r.POST("/remove", h.RemoveTask)
	r.GET("/health", h.Health)
}

// Index godoc
// @Summary      Task list page
// @Description  Renders the current tasks in insertion order.
// @Tags         tasks
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Failure      500  {object}  ErrorResponse
// @Router       / [get]
func (h *TaskHandler) Index(c *gin.Context) {
	names, err := h.store.List(c.Request.Context())
	if err != nil {
		h.storeError(c, "list", err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Tasks": names})
}

// ListTasks godoc
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  TasksResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	names, err := h.store.List(c.Request.Context())
	if err != nil {
		h.storeError(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, TasksResponse{Tasks: names})
}

// AddTask godoc
// @Summary      Add a task
// @Description  Appends task_name to the list. Duplicates and empty names are accepted.
// @Tags         tasks
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        task_name  formData  string  true  "Task name"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /add [post]
func (h *TaskHandler) AddTask(c *gin.Context) {
	name, ok := c.GetPostForm(taskNameField)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: taskNameField + " is required"})
		return
	}

	names, err := h.store.Add(c.Request.Context(), name)
	if err != nil {
		h.storeError(c, "add", err)
		return
	}

	h.log.WithField("task", name).Debug("task added")
	c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Task '%s' added successfully", name),
		Tasks:   names,
	})
}

// RemoveTask godoc
// @Summary      Remove a task
// @Description  Removes the first task named task_name. A missing task is reported, not treated as an error.
// @Tags         tasks
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        task_name  formData  string  true  "Task name"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /remove [post]
func (h *TaskHandler) RemoveTask(c *gin.Context) {
	name, ok := c.GetPostForm(taskNameField)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: taskNameField + " is required"})
		return
	}

	names, removed, err := h.store.Remove(c.Request.Context(), name)
	if err != nil {
		h.storeError(c, "remove", err)
		return
	}

	msg := fmt.Sprintf("Task '%s' removed successfully", name)
	if !removed {
		msg = fmt.Sprintf("Task '%s' not found", name)
	}
	h.log.WithFields(logrus.Fields{"task": name, "removed": removed}).Debug("task remove")
	c.JSON(http.StatusOK, MessageResponse{
		Message: msg,
		Removed: &removed,
		Tasks:   names,
	})
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *TaskHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.log.WithError(err).Warn("store ping failed")
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *TaskHandler) storeError(c *gin.Context, op string, err error) {
	h.log.WithError(err).WithField("op", op).Error("task store failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
