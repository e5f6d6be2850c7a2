package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/myproparti-blip/My-pro-backend/internal/handlers"
	"github.com/myproparti-blip/My-pro-backend/internal/middleware"
	"github.com/myproparti-blip/My-pro-backend/internal/services"
	"github.com/myproparti-blip/My-pro-backend/ws"
)

// Register mounts every route group on the engine.
func Register(r *gin.Engine, h *handlers.AppHandlers, container *services.ServiceContainer, manager *ws.Manager, uploadsDir string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if uploadsDir != "" {
		r.Static("/uploads", uploadsDir)
	}

	api := r.Group("/api")
	{
		h.Auth.RegisterRoutes(api)
		h.Property.RegisterRoutes(api)
		h.Agent.RegisterRoutes(api)
		h.Consultant.RegisterRoutes(api)
		h.Advertisement.RegisterRoutes(api)
		h.Location.RegisterRoutes(api)
	}

	wsGroup := r.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware(container.Auth))
	{
		wsGroup.GET("", manager.ServeWS)
	}
}
