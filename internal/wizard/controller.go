package wizard

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"chamber/internal/shared/config"
	"chamber/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service

	// stepDelay is a purely cosmetic pause after a successful advance so
	// the UI progress animation can play; it gates no work and is zero in
	// tests.
	stepDelay time.Duration
}

func NewController(service Service, cfg *config.Config) *Controller {
	return &Controller{
		service:   service,
		stepDelay: cfg.Wizard.StepDelay,
	}
}

// StartWizard handles POST /api/v1/wizard
func (c *Controller) StartWizard(ctx *gin.Context) {
	var userID *uuid.UUID
	if raw, exists := ctx.Get("user_id"); exists {
		if parsed, err := uuid.Parse(raw.(string)); err == nil {
			userID = &parsed
		}
	}

	machine, err := c.service.Start(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to start booking wizard", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Wizard session started", machine, nil)
}

// GetWizard handles GET /api/v1/wizard/:id
func (c *Controller) GetWizard(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	machine, err := c.service.Get(ctx.Request.Context(), sessionID)
	if err != nil {
		c.respondError(ctx, err, "Failed to get wizard session")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Wizard session retrieved", machine, nil)
}

// UpdateForm handles PATCH /api/v1/wizard/:id
func (c *Controller) UpdateForm(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req UpdateFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	machine, err := c.service.UpdateForm(ctx.Request.Context(), sessionID, req)
	if err != nil {
		c.respondError(ctx, err, "Failed to update wizard form")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Wizard form updated", machine, nil)
}

// Advance handles POST /api/v1/wizard/:id/advance
func (c *Controller) Advance(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	machine, err := c.service.Advance(ctx.Request.Context(), sessionID)
	if err != nil {
		c.respondError(ctx, err, "Failed to advance wizard")
		return
	}

	if c.stepDelay > 0 {
		time.Sleep(c.stepDelay)
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Advanced to next step", machine, nil)
}

// Back handles POST /api/v1/wizard/:id/back
func (c *Controller) Back(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	machine, err := c.service.Back(ctx.Request.Context(), sessionID)
	if err != nil {
		c.respondError(ctx, err, "Failed to go back")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Returned to previous step", machine, nil)
}

// SetGroupSize handles PUT /api/v1/wizard/:id/group-size
func (c *Controller) SetGroupSize(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	var req GroupSizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	machine, err := c.service.SetGroupSize(ctx.Request.Context(), sessionID, req.Size)
	if err != nil {
		c.respondError(ctx, err, "Failed to set group size")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Group size updated", machine, nil)
}

// ToggleSeat handles POST /api/v1/wizard/:id/seats/:seat/toggle
func (c *Controller) ToggleSeat(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}
	seatID, ok := c.seatID(ctx)
	if !ok {
		return
	}

	machine, err := c.service.ToggleSeat(ctx.Request.Context(), sessionID, seatID)
	if err != nil {
		c.respondError(ctx, err, "Failed to toggle seat")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat toggled", machine, nil)
}

// SetSeatName handles PUT /api/v1/wizard/:id/seats/:seat/name
func (c *Controller) SetSeatName(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}
	seatID, ok := c.seatID(ctx)
	if !ok {
		return
	}

	var req SeatNameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	machine, err := c.service.SetSeatName(ctx.Request.Context(), sessionID, seatID, req.Name)
	if err != nil {
		c.respondError(ctx, err, "Failed to set seat name")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat name updated", machine, nil)
}

// Submit handles POST /api/v1/wizard/:id/submit
func (c *Controller) Submit(ctx *gin.Context) {
	sessionID, ok := c.sessionID(ctx)
	if !ok {
		return
	}

	machine, booking, err := c.service.Submit(ctx.Request.Context(), sessionID)
	if err != nil {
		c.respondError(ctx, err, "Failed to submit booking")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking submitted successfully", gin.H{
		"wizard":  machine,
		"booking": booking,
	}, nil)
}

func (c *Controller) sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return uuid.Nil, false
	}
	return sessionID, true
}

func (c *Controller) seatID(ctx *gin.Context) (int, bool) {
	seatID, err := strconv.Atoi(ctx.Param("seat"))
	if err != nil || seatID < 1 || seatID > MaxSeats {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat ID", nil, nil)
		return 0, false
	}
	return seatID, true
}

// respondError maps service errors onto HTTP codes. Validation problems are
// 422 with the offending group attached; everything unexpected hides behind
// a generic 500.
func (c *Controller) respondError(ctx *gin.Context, err error, message string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, message, nil, verr)
	case errors.Is(err, ErrSessionNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Wizard session not found or expired", nil, nil)
	case errors.Is(err, ErrAlreadySubmitted):
		response.RespondJSON(ctx, "error", http.StatusConflict, "This booking was already submitted", nil, nil)
	case errors.Is(err, ErrInvalidSeat), errors.Is(err, ErrInvalidGroupSize), errors.Is(err, ErrSubmitRequired):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, message, nil, err.Error())
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, message, nil, err.Error())
	}
}
