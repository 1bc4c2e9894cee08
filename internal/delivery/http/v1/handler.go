package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/services"
)

type Handler interface {
	HandleRequestLogger(c *gin.Context)
	HandleHealth(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger            zerolog.Logger
	tasks             services.TaskService
	emptyListNotFound bool
}

type Option func(*handlerImpl)

// WithEmptyListNotFound makes GET /tasks answer 404 "No tasks found"
// for an empty collection instead of 200 with an empty list.
func WithEmptyListNotFound(enabled bool) Option {
	return func(h *handlerImpl) {
		h.emptyListNotFound = enabled
	}
}

func New(
	logger zerolog.Logger,
	taskService services.TaskService,
	opts ...Option,
) Handler {
	h := &handlerImpl{
		logger: logger,
		tasks:  taskService,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewRouter builds the gin engine serving h.
func NewRouter(h Handler) *gin.Engine {
	mustRegisterValidations()

	router := gin.New()
	router.Use(h.HandleRequestLogger)
	router.Use(gin.Recovery())

	router.GET("/healthz", h.HandleHealth)

	api := router.Group("/api")

	tasksRouter := api.Group("/tasks")
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.GET("/:id", h.HandleGetTask)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)

	return router
}
