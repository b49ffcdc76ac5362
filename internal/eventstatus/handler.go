package eventstatus

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// SweepNow - POST /events/status/sweep
//
// On-demand trigger for the same sweep the scheduler runs. Takes no payload;
// the sweep is global, not scoped to the caller.
func (h *Handler) SweepNow(c *gin.Context) {
	result, err := h.Service.Sweep(c.Request.Context())
	if err != nil {
		// Root cause already logged inside the sweep; the caller gets a
		// generic message only.
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
