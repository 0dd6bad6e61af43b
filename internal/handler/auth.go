package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-analytics/internal/apperror"
	"retail-analytics/internal/auth"
	"retail-analytics/internal/model"
)

// AuthHandler serves login requests.
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login verifies the submitted credentials and returns a signed JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.Validationf("invalid request body: %v", err))
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			_ = c.Error(apperror.Authentication("invalid username or password"))
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, response)
}
