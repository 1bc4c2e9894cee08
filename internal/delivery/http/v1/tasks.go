package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskboard/internal/models"
	"github.com/adanyl0v/taskboard/internal/services"
)

type listTasksResponse struct {
	Message string         `json:"message"`
	Tasks   []*models.Task `json:"tasks"`
}

type taskResponse struct {
	Message string       `json:"message,omitempty"`
	Task    *models.Task `json:"task"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type createTaskRequest struct {
	Title       string        `json:"title" binding:"required,notblank,max=255"`
	Description string        `json:"description" binding:"max=4096"`
	Status      models.Status `json:"status" binding:"taskstatus"`
	DueDate     string        `json:"dueDate" binding:"required,duedate"`
}

// updateTaskRequest carries the full replacement of a task: every field
// is written, omitted ones included.
type updateTaskRequest struct {
	Title       string        `json:"title" binding:"required,notblank,max=255"`
	Description string        `json:"description" binding:"max=4096"`
	Status      models.Status `json:"status" binding:"required,taskstatus"`
	DueDate     string        `json:"dueDate" binding:"required,duedate"`
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newInternalError("Error retrieving tasks").withDetail(err))
		return
	}

	if len(tasks) == 0 && h.emptyListNotFound {
		h.logger.Warn().Msg("no tasks found")
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "No tasks found"})
		return
	}

	if tasks == nil {
		tasks = []*models.Task{}
	}

	h.logger.Debug().
		Int("count", len(tasks)).
		Msg("fetched tasks")
	c.JSON(http.StatusOK, listTasksResponse{
		Message: "Successfully retrieved all tasks",
		Tasks:   tasks,
	})
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError(errTaskIDRequired.Error()))
		return
	}

	task, err := h.tasks.GetByID(c, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError("Task not found"))
			return
		}

		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to get task")
		abort(c, newInternalError("Failed to fetch task").withDetail(err))
		return
	}

	c.JSON(http.StatusOK, taskResponse{Task: task})
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()).withDetail(err))
		return
	}

	task, err := h.tasks.Create(c, services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidTask) {
			abort(c, newBadRequestError(errInvalidRequestBody.Error()).withDetail(err))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abort(c, newInternalError("Failed to create task").withDetail(err))
		return
	}

	c.JSON(http.StatusCreated, taskResponse{
		Message: "Task created successfully",
		Task:    task,
	})
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError(errTaskIDRequired.Error()))
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()).withDetail(err))
		return
	}

	task, err := h.tasks.Update(c, services.UpdateTaskParams{
		ID:          taskID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError("Task not found"))
		case errors.Is(err, services.ErrInvalidTask):
			abort(c, newBadRequestError(errInvalidRequestBody.Error()).withDetail(err))
		default:
			h.logger.Error().
				Err(err).
				Str("task_id", taskID).
				Msg("failed to update task")
			abort(c, newInternalError("Failed to update task").withDetail(err))
		}
		return
	}

	c.JSON(http.StatusOK, taskResponse{
		Message: "Task updated successfully",
		Task:    task,
	})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError(errTaskIDRequired.Error()))
		return
	}

	err := h.tasks.Delete(c, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError("Task not found"))
			return
		}

		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		abort(c, newInternalError("Failed to delete task").withDetail(err))
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}
