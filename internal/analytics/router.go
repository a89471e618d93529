package analytics

import (
	"chamber/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAnalyticsRoutes configures analytics routes (admin only)
func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller *Controller) {
	analytics := rg.Group("/analytics")
	analytics.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		analytics.POST("/bookings", controller.GetBookingAnalytics) // POST /api/v1/analytics/bookings
	}
}
