package locations

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

// GetLocations handles GET /api/v1/locations
func (c *Controller) GetLocations(ctx *gin.Context) {
	locations, err := c.service.GetLocations(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get locations", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Locations retrieved successfully", locations, nil)
}

// GetLocation handles GET /api/v1/locations/:slug
func (c *Controller) GetLocation(ctx *gin.Context) {
	location, err := c.service.GetLocation(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrLocationNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get location", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Location retrieved successfully", location, nil)
}

// CreateLocation handles POST /api/v1/admin/locations
func (c *Controller) CreateLocation(ctx *gin.Context) {
	var req CreateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	location, err := c.service.CreateLocation(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create location", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Location created successfully", location, nil)
}
