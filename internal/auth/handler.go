package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pavan8023/webibook-backend/internal/auditlog"
)

type Handler struct {
	Service  Service
	AuditSvc auditlog.Service
}

func NewHandler(s Service, auditSvc auditlog.Service) *Handler {
	return &Handler{Service: s, AuditSvc: auditSvc}
}

// Register - POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := c.ClientIP()

	err := h.Service.Register(RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		h.AuditSvc.LogAction(context.Background(), nil, nil, "USER_REGISTERED",
			map[string]interface{}{"email": req.Email, "error": err.Error()}, ip, "failure")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.AuditSvc.LogAction(context.Background(), nil, nil, "USER_REGISTERED",
		map[string]interface{}{"email": req.Email, "role": req.Role}, ip, "success")
	c.JSON(http.StatusCreated, gin.H{"message": "registration successful"})
}

// Login - POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := c.ClientIP()

	tokens, user, err := h.Service.Login(LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.AuditSvc.LogAction(context.Background(), nil, nil, "USER_LOGIN",
			map[string]interface{}{"email": req.Email, "error": err.Error()}, ip, "failure")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	h.AuditSvc.LogAction(context.Background(), &user.ID, nil, "USER_LOGIN",
		map[string]interface{}{"email": user.Email}, ip, "success")

	c.JSON(http.StatusOK, gin.H{
		"tokens": tokens,
		"user": gin.H{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role.RoleName,
		},
	})
}

// Refresh - POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	access, err := h.Service.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": access})
}

// ForgotPassword - POST /auth/forgot-password
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if err := h.Service.RequestPasswordReset(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process reset request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset email has been sent"})
}

// ResetPassword - POST /auth/reset-password
func (h *Handler) ResetPassword(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if err := h.Service.ResetPassword(req.Token, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated successfully"})
}

// GetPublicRoles - GET /auth/roles
func (h *Handler) GetPublicRoles(c *gin.Context) {
	roles, err := h.Service.GetPublicRoles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch roles"})
		return
	}
	c.JSON(http.StatusOK, roles)
}
