package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"automation-dashboard/internal/dispatch"
	"automation-dashboard/internal/faults"
	"automation-dashboard/internal/model"
	"automation-dashboard/internal/store"
)

type TaskHandler struct {
	dispatcher *dispatch.Dispatcher
	taskStore  store.TaskStore
	logger     *zap.Logger
}

func NewTaskHandler(dispatcher *dispatch.Dispatcher, taskStore store.TaskStore, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{dispatcher: dispatcher, taskStore: taskStore, logger: logger}
}

// CreateTask handles POST /tasks/:type. The path segment selects the task
// type; a task_type in the body must agree with it when present.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	taskType := model.TaskType(c.Param("type"))
	if !taskType.Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown task type: " + c.Param("type")})
		return
	}

	var req model.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("CreateTask: invalid request body",
			zap.String("task_type", string(taskType)),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.TaskType != "" && req.TaskType != taskType {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task_type does not match URL"})
		return
	}

	record, err := h.dispatcher.Dispatch(c.Request.Context(), taskType, req.Parameters)
	if err != nil {
		if record == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "dispatch failed"})
			return
		}
		// the failed record is the response body; the status code carries
		// the failure class
		if faults.IsValidation(err) {
			c.JSON(http.StatusBadRequest, record)
			return
		}
		c.JSON(http.StatusInternalServerError, record)
		return
	}

	c.JSON(http.StatusOK, record)
}

// ListTasks handles GET /tasks.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	records, err := h.taskStore.List(c.Request.Context())
	if err != nil {
		h.logger.Error("ListTasks: failed to list task records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": records})
}

// GetTask handles GET /tasks/:id.
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID := c.Param("id")
	record, err := h.taskStore.Get(c.Request.Context(), taskID)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	if err != nil {
		h.logger.Error("GetTask: failed to fetch task record",
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch task"})
		return
	}
	c.JSON(http.StatusOK, record)
}
