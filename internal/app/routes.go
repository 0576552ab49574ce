package app

import (
	"Todo/internal/config"
	"Todo/internal/handlers"
	"Todo/internal/service"

	"github.com/gin-gonic/gin"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, svc *service.TaskService) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))

	api := r.Group("/api")
	registerTaskRoutes(api, handlers.NewTaskHandler(svc))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Task Service",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"health":  "/health",
			"api":     "/api/todos",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.GET("/todos", h.List)
	api.POST("/todos", h.Create)
	api.GET("/todos/:id", h.GetByID)
	api.PUT("/todos/:id", h.Update)
	api.DELETE("/todos/:id", h.Delete)
}
