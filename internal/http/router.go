package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	heartbeat := streamHeartbeat(cfg.HeartbeatInterval)

	health := NewHealthController(cfg.Database, cfg.Version)
	itemsController := NewItemsController(cfg.Items, cfg.TaskClient)
	annotationsController := NewAnnotationsController(cfg.Annotations)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Items API endpoints
	router.GET("/api/items", itemsController.List)
	router.POST("/api/items", itemsController.Create)
	router.POST("/api/items/refresh", itemsController.Refresh)
	router.GET("/api/items/stream", itemsController.Stream(heartbeat))
	router.GET("/api/items/:id", itemsController.Get)
	router.PUT("/api/items/:id", itemsController.Update)
	router.DELETE("/api/items/:id", itemsController.Delete)
	router.GET("/api/items/:id/stream", itemsController.StreamOne(heartbeat))
	router.GET("/api/items/:id/share", itemsController.Share)

	// Annotation endpoints
	router.GET("/api/items/:id/annotations", annotationsController.List)
	router.POST("/api/items/:id/annotations", annotationsController.Add)
	router.GET("/api/items/:id/annotations/stream", annotationsController.Stream(heartbeat))
	router.PUT("/api/annotations/:id", annotationsController.Edit)
	router.DELETE("/api/annotations/:id", annotationsController.Delete)

	// Task status endpoint
	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}
