package middleware

import (
	"github.com/gin-gonic/gin"
)

// Role constants to avoid string typos
const (
	RoleSuperAdmin = "superadmin"
	RoleHost       = "host"
	RoleAttendee   = "attendee"
)

// AccessContext stores user access information for the current request
type AccessContext struct {
	UserID         uint
	RoleName       string
	PermissionType string // "full" or "readonly"
}

// CanWrite returns true if the user has write permissions
func (ac *AccessContext) CanWrite() bool {
	return ac.PermissionType == "full"
}

// CanRead returns true if the user has read permissions
func (ac *AccessContext) CanRead() bool {
	return ac.PermissionType == "full" || ac.PermissionType == "readonly"
}

// IsHostOrAdmin reports whether the user may manage events
func (ac *AccessContext) IsHostOrAdmin() bool {
	return ac.RoleName == RoleHost || ac.RoleName == RoleSuperAdmin
}

// GetAccessContext extracts the AccessContext placed by AuthMiddleware
func GetAccessContext(c *gin.Context) (AccessContext, bool) {
	raw, exists := c.Get("access_context")
	if !exists {
		return AccessContext{}, false
	}
	ac, ok := raw.(AccessContext)
	return ac, ok
}

// GetIPFromContext returns the client IP stored by AuditMiddleware
func GetIPFromContext(c *gin.Context) string {
	if ip, exists := c.Get("client_ip"); exists {
		if s, ok := ip.(string); ok {
			return s
		}
	}
	return c.ClientIP()
}
