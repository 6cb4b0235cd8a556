package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dtroode/opentask-server/internal/api/http/handler"
	"github.com/dtroode/opentask-server/internal/api/http/middleware"
	"github.com/dtroode/opentask-server/internal/logger"
	"github.com/dtroode/opentask-server/internal/model"
)

// Router builds the HTTP routing table. Every route is registered exactly
// once; only fetchUserId sits behind the bearer-token check.
type Router struct {
	authHandler    *handler.Auth
	taskHandler    *handler.Task
	fileHandler    *handler.File
	tokenService   middleware.TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authHandler *handler.Auth,
	taskHandler *handler.Task,
	fileHandler *handler.File,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authHandler:    authHandler,
		taskHandler:    taskHandler,
		fileHandler:    fileHandler,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register sets up the engine with logging, recovery and CORS middleware
// and registers all routes.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	e := gin.New()
	e.Use(gin.Recovery(), logging.Handle, middleware.CORS())

	api := e.Group("/api")
	api.POST("/register", r.authHandler.Register)
	api.POST("/tasks", r.taskHandler.Create)

	user := api.Group("/user")
	user.POST("/login", r.authHandler.Login)
	user.POST("/fetchUserId", authenticate.Handle, r.authHandler.FetchUserID)

	tasks := e.Group("/tasks")
	tasks.GET("", r.taskHandler.List)
	tasks.POST("/upload", r.fileHandler.Upload)
	tasks.GET("/files/:name", r.fileHandler.Download)
	tasks.GET("/:id", r.taskHandler.Get)
	tasks.PUT("/:id", r.taskHandler.Update)
	tasks.DELETE("/:id", r.taskHandler.Delete)

	return e
}
