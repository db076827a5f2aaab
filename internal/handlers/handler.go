package handlers

import (
	"discussion_board/internal/logger"
	"discussion_board/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	router.POST("/token/", h.issueToken)

	// User endpoints
	user := router.Group("/user")
	{
		user.POST("/create/", h.createUser)
		user.GET("/discussion_threads/", h.bearerAuthMiddleware, h.myThreads)
	}

	// Thread endpoints: reads are public, mutations require a bearer token.
	threads := router.Group("/discussion_threads")
	{
		threads.GET("/", h.listThreads)
		threads.GET("/:id/", h.readThread)
		threads.POST("/create/", h.bearerAuthMiddleware, h.createThread)
		threads.PATCH("/:id/", h.bearerAuthMiddleware, h.updateThread)
		threads.DELETE("/:id/", h.bearerAuthMiddleware, h.deleteThread)
	}

	return router
}
