package transport

import (
	"net/http"
	"strconv"

	"github.com/dskendzo/eventplanner/internal/service"
	"github.com/dskendzo/eventplanner/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	registrationService service.RegistrationService
}

func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Participate handles POST /events/:id/registrations.
func (h *RegistrationHandler) Participate(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid event id"})
		return
	}

	// Body is optional; an empty POST is a plain sign-up.
	var req service.ParticipateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
			return
		}
	}

	reg, err := h.registrationService.Participate(c.Request.Context(), middleware.UserID(c), eventID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Success: true, Data: reg})
}

// MyStatus handles GET /events/:id/registrations/me. A user who never
// joined gets a 200 with null data, never an error.
func (h *RegistrationHandler) MyStatus(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid event id"})
		return
	}

	reg, err := h.registrationService.MyStatus(c.Request.Context(), middleware.UserID(c), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: reg})
}

// Cancel handles DELETE /events/:id/registrations/me.
func (h *RegistrationHandler) Cancel(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid event id"})
		return
	}

	if err := h.registrationService.Cancel(c.Request.Context(), middleware.UserID(c), eventID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "registration cancelled"})
}

func (h *RegistrationHandler) CheckIn(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid event id"})
		return
	}

	reg, err := h.registrationService.CheckIn(c.Request.Context(), middleware.UserID(c), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: reg})
}

func (h *RegistrationHandler) CheckOut(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid event id"})
		return
	}

	reg, err := h.registrationService.CheckOut(c.Request.Context(), middleware.UserID(c), eventID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: reg})
}

// DeleteAllForEvent handles DELETE /events/:id/registrations. Admin only:
// clears the whole attendance list without deleting the event itself.
func (h *RegistrationHandler) DeleteAllForEvent(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid event id"})
		return
	}

	if err := h.registrationService.DeleteAllForEvent(c.Request.Context(), eventID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "registrations deleted"})
}

// MyRegistrations handles GET /registrations/me.
func (h *RegistrationHandler) MyRegistrations(c *gin.Context) {
	regs, err := h.registrationService.GetUserRegistrations(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: regs})
}
