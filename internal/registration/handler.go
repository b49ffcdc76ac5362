package registration

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Pavan8023/webibook-backend/internal/auth"
	"github.com/Pavan8023/webibook-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 🎯 Register - POST /events/:id/register
func (h *Handler) Register(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	// Email for the confirmation message comes from the authed user
	var email string
	if userVal, exists := c.Get("user"); exists {
		if user, ok := userVal.(auth.User); ok {
			email = user.Email
		}
	}

	ip := middleware.GetIPFromContext(c)

	reg, err := h.Service.Register(c.Request.Context(), uint(eventID), accessContext, email, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, reg)
}

// ===========================
// ❌ Cancel - DELETE /events/:id/register
func (h *Handler) Cancel(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)

	if err := h.Service.Cancel(c.Request.Context(), uint(eventID), accessContext, ip); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registration cancelled"})
}

// ===========================
// 📄 Attendees - GET /events/:id/attendees
func (h *Handler) ListAttendees(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	attendees, err := h.Service.ListAttendees(uint(eventID), accessContext)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, attendees)
}

// ===========================
// 📄 My registrations - GET /registrations/mine
func (h *Handler) MyRegistrations(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	regs, err := h.Service.MyRegistrations(accessContext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, regs)
}
