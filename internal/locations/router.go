package locations

import (
	"chamber/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupLocationRoutes configures all location-related routes
func SetupLocationRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Public site listing for the wizard's location step
	locations := rg.Group("/locations")
	{
		locations.GET("", controller.GetLocations)      // GET /api/v1/locations
		locations.GET("/:slug", controller.GetLocation) // GET /api/v1/locations/:slug
	}

	admin := rg.Group("/admin/locations")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateLocation) // POST /api/v1/admin/locations
	}
}
