package bookings

import (
	"chamber/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Signed-in members can list their own bookings
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		bookings.GET("/me", controller.GetMyBookings) // GET /api/v1/bookings/me
	}

	// Admin booking management
	admin := rg.Group("/admin/bookings")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.GetBookings)            // GET    /api/v1/admin/bookings
		admin.GET("/:id", controller.GetBooking)         // GET    /api/v1/admin/bookings/:id
		admin.PATCH("/:id", controller.UpdateBooking)    // PATCH  /api/v1/admin/bookings/:id
		admin.POST("/delete", controller.DeleteBookings) // POST   /api/v1/admin/bookings/delete
	}
}
