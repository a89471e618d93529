package analytics

import (
	"errors"
	"net/http"

	"chamber/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetBookingAnalytics handles POST /api/v1/analytics/bookings
func (c *Controller) GetBookingAnalytics(ctx *gin.Context) {
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.service.GetBookingAnalytics(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid analytics request", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get booking analytics", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Analytics retrieved successfully", result, nil)
}
