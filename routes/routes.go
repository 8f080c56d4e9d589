package routes

import (
	"github.com/Nikhil-407/TrendMart/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes.
// Middleware must be attached before any route group is registered, since
// gin snapshots the handler chain at registration time.
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())

	// API version group
	api := router.Group("/v1")
	{
		// Initialize user routes (includes public auth and catalog routes)
		initUserRoutes(api)

		// Initialize admin routes
		initAdminRoutes(api)
	}

	return router
}
