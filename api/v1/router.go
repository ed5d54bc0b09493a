package v1

import (
	"go_vpnadmin/api/v1/auth"
	"go_vpnadmin/api/v1/clients"
	"go_vpnadmin/api/v1/middleware"
	"go_vpnadmin/api/v1/operations"
	"go_vpnadmin/internal/config"
	"go_vpnadmin/internal/httpx"
	"go_vpnadmin/internal/orchestrator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter sets up the API v1 routes
func SetupRouter(r *gin.Engine, db *gorm.DB, cfg *config.Config, svc *orchestrator.Service) {
	v1 := r.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.GET("/ping", pingHandler)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", auth.LoginHandler(db, cfg))
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthRequired())
		{
			clientsHandler := clients.NewHandler(svc)
			clientsGroup := protected.Group("/clients")
			{
				clientsGroup.POST("", clientsHandler.Create)
				clientsGroup.GET("", clientsHandler.List)
				clientsGroup.GET("/:id", clientsHandler.Get)
				clientsGroup.DELETE("/:id", clientsHandler.Delete)
				clientsGroup.POST("/:id/extend", clientsHandler.Extend)
				clientsGroup.POST("/:id/block", clientsHandler.Block)
				clientsGroup.POST("/:id/unblock", clientsHandler.Unblock)
				clientsGroup.GET("/:id/config", clientsHandler.GetConfig)
				clientsGroup.POST("/:id/config/rotate", clientsHandler.RotateConfig)
			}

			operationsHandler := operations.NewHandler(svc)
			protected.GET("/operations", operationsHandler.List)
		}
	}
}

// pingHandler handles the ping request using unified response
func pingHandler(c *gin.Context) {
	httpx.OK(c, gin.H{
		"pong": true,
	})
}
