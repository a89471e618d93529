package slots

import (
	"errors"
	"net/http"

	"chamber/internal/locations"
	"chamber/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetAvailability handles GET /api/v1/slots?date=YYYY-MM-DD&location=atmos
func (c *Controller) GetAvailability(ctx *gin.Context) {
	date := ctx.Query("date")
	if date == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "date query parameter is required", nil, nil)
		return
	}

	availability, err := c.service.GetAvailability(ctx.Request.Context(), date, ctx.Query("location"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid date", nil, err.Error())
		case errors.Is(err, locations.ErrLocationNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Unknown location", nil, err.Error())
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get slot availability", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Slot availability retrieved successfully", availability, nil)
}
