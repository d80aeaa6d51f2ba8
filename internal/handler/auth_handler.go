package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lalajistore/vendor-gateway/internal/middleware"
	"github.com/lalajistore/vendor-gateway/internal/service"
	"github.com/lalajistore/vendor-gateway/internal/utils"
)

// AuthHandler handles vendor login and logout.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) {
			utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		utils.Error(c, 502, "UPSTREAM_UNAVAILABLE", "Marketplace request failed")
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token":  result.Token,
		"vendor": result.Vendor,
	})
}

// Logout handles POST /v1/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		utils.Error(c, 401, "UNAUTHORIZED", "Not authenticated")
		return
	}

	h.authService.Logout(sess)
	utils.Success(c, 200, "Logged out", nil)
}
