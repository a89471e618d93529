package wizard

import (
	"chamber/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupWizardRoutes configures the booking wizard routes. Auth is optional
// everywhere: a valid token skips the guest-info step and links the
// booking to the account, a missing one means a guest session.
func SetupWizardRoutes(rg *gin.RouterGroup, controller *Controller) {
	wizard := rg.Group("/wizard")
	wizard.Use(middleware.OptionalAuth())
	{
		wizard.POST("", controller.StartWizard)                       // POST  /api/v1/wizard
		wizard.GET("/:id", controller.GetWizard)                      // GET   /api/v1/wizard/:id
		wizard.PATCH("/:id", controller.UpdateForm)                   // PATCH /api/v1/wizard/:id
		wizard.POST("/:id/advance", controller.Advance)               // POST  /api/v1/wizard/:id/advance
		wizard.POST("/:id/back", controller.Back)                     // POST  /api/v1/wizard/:id/back
		wizard.PUT("/:id/group-size", controller.SetGroupSize)        // PUT   /api/v1/wizard/:id/group-size
		wizard.POST("/:id/seats/:seat/toggle", controller.ToggleSeat) // POST  /api/v1/wizard/:id/seats/:seat/toggle
		wizard.PUT("/:id/seats/:seat/name", controller.SetSeatName)   // PUT   /api/v1/wizard/:id/seats/:seat/name
		wizard.POST("/:id/submit", controller.Submit)                 // POST  /api/v1/wizard/:id/submit
	}
}
