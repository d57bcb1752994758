package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lamnguyen/folio/internal/store"
	"github.com/lamnguyen/folio/pkg/apperror"
	"github.com/lamnguyen/folio/pkg/auth"
	"github.com/lamnguyen/folio/pkg/logger"
)

type AuthHandler struct {
	store  *store.Store
	jwtSvc *auth.JWTService
	logger logger.Logger
}

func NewAuthHandler(s *store.Store, jwtSvc *auth.JWTService, log logger.Logger) *AuthHandler {
	return &AuthHandler{store: s, jwtSvc: jwtSvc, logger: log}
}

// Login checks the password against the store and hands out a bearer token
// for the admin routes. Failed attempts are unlimited.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for login", err))
		return
	}

	if !h.store.Login(req.Password) {
		c.Error(apperror.NewUnauthorized("incorrect password", nil))
		return
	}

	token, err := h.jwtSvc.GenerateToken()
	if err != nil {
		h.logger.Error("Failed to generate token", err)
		c.Error(apperror.NewInternal("failed to generate token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.store.Logout()
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// ChangePassword validates the current password and the confirmation before
// touching the credential; the store itself performs no such checks.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for password change", err))
		return
	}

	if !h.store.VerifyPassword(req.CurrentPassword) {
		c.Error(apperror.NewUnauthorized("current password is incorrect", nil))
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		c.Error(apperror.NewInvalidInput("new password and confirmation do not match", nil))
		return
	}

	if err := h.store.ChangePassword(req.NewPassword); err != nil {
		c.Error(apperror.NewInternal("failed to change password", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "password changed"})
}
