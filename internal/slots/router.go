package slots

import "github.com/gin-gonic/gin"

// SetupSlotRoutes configures the public slot availability route
func SetupSlotRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/slots", controller.GetAvailability) // GET /api/v1/slots?date=YYYY-MM-DD
}
