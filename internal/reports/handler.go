package reports

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Pavan8023/webibook-backend/middleware"
)

type Handler struct {
	Service ReportService
}

func NewHandler(s ReportService) *Handler {
	return &Handler{Service: s}
}

func parseDateQuery(c *gin.Context, key string) time.Time {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseFormatQuery(c *gin.Context) string {
	format := c.DefaultQuery("format", FormatCSV)
	switch format {
	case FormatCSV, FormatExcel, FormatPDF:
		return format
	default:
		return ""
	}
}

// ===========================
// 📊 WebinarsReport - GET /reports/webinars
func (h *Handler) WebinarsReport(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	format := parseFormatQuery(c)
	if format == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv, excel or pdf"})
		return
	}

	req := WebinarReportRequest{
		Status:    c.Query("status"),
		StartDate: parseDateQuery(c, "start_date"),
		EndDate:   parseDateQuery(c, "end_date"),
		Format:    format,
	}
	if raw := c.Query("host_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			hostID := uint(id)
			req.HostID = &hostID
		}
	}

	ip := middleware.GetIPFromContext(c)

	data, fname, mime, err := h.Service.ExportWebinarsReport(c.Request.Context(), req, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fname))
	c.Data(http.StatusOK, mime, data)
}

// ===========================
// 👥 AttendeesReport - GET /reports/events/:id/attendees
func (h *Handler) AttendeesReport(c *gin.Context) {
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

	format := parseFormatQuery(c)
	if format == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv, excel or pdf"})
		return
	}

	req := AttendeeReportRequest{
		EventID: uint(eventID),
		Format:  format,
	}

	ip := middleware.GetIPFromContext(c)

	data, fname, mime, err := h.Service.ExportAttendeesReport(c.Request.Context(), req, accessContext, ip)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fname))
	c.Data(http.StatusOK, mime, data)
}

// ===========================
// 🧾 AuditLogsReport - GET /reports/audit-logs
func (h *Handler) AuditLogsReport(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	format := parseFormatQuery(c)
	if format == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv, excel or pdf"})
		return
	}

	req := AuditLogReportRequest{
		Action:    c.Query("action"),
		StartDate: parseDateQuery(c, "start_date"),
		EndDate:   parseDateQuery(c, "end_date"),
		Format:    format,
	}
	if raw := c.Query("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			userID := uint(id)
			req.UserID = &userID
		}
	}

	ip := middleware.GetIPFromContext(c)

	data, fname, mime, err := h.Service.ExportAuditLogsReport(c.Request.Context(), req, accessContext, ip)
	if err != nil {
		if errors.Is(err, ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fname))
	c.Data(http.StatusOK, mime, data)
}
