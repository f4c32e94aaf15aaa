// Package auth exposes the session endpoints: login, Google login, logout,
// the current-viewer probe, and the per-session promo popup flag.
package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/middleware"
	"github.com/learnova/gateway/internal/models"
	"github.com/learnova/gateway/internal/session"
	"github.com/learnova/gateway/internal/upstream"
	"github.com/learnova/gateway/pkg/response"
)

// Handler serves auth and viewer endpoints.
type Handler struct {
	store  *session.Store
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(store *session.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type googleRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

type sessionResponse struct {
	Token   string          `json:"token"`
	Student *models.Student `json:"student"`
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	sess, token, err := h.store.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if upstream.IsAuthError(err) {
			response.Unauthorized(c, upstream.ErrorMessage(err, "invalid credentials"))
			return
		}
		h.logger.Error("login", zap.Error(err))
		response.BadGateway(c, upstream.ErrorMessage(err, "login failed"))
		return
	}

	response.OK(c, sessionResponse{Token: token, Student: sess.Student})
}

// GoogleLogin handles POST /auth/google.
func (h *Handler) GoogleLogin(c *gin.Context) {
	var req googleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "idToken is required")
		return
	}

	sess, token, err := h.store.LoginWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrGoogleNotConfigured):
			response.ServiceUnavailable(c, "google sign-in is not configured")
		case upstream.IsAuthError(err) || errors.Is(err, session.ErrInvalidIDToken):
			response.Unauthorized(c, "google sign-in rejected")
		default:
			h.logger.Error("google login", zap.Error(err))
			response.BadGateway(c, upstream.ErrorMessage(err, "google sign-in failed"))
		}
		return
	}

	response.OK(c, sessionResponse{Token: token, Student: sess.Student})
}

// Logout handles POST /auth/logout. Local state is cleared even when the
// backend call fails, so logout always succeeds from the viewer's side.
func (h *Handler) Logout(c *gin.Context) {
	h.store.Logout(c.Request.Context(), middleware.CurrentSession(c))
	response.NoContent(c)
}

// Me handles GET /auth/me.
func (h *Handler) Me(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if !sess.IsAuthenticated() {
		response.Unauthorized(c, "not logged in")
		return
	}
	response.OK(c, gin.H{
		"student":     sess.Student,
		"displayName": sess.Student.DisplayName(),
	})
}

// DismissPopup handles POST /me/popup/dismiss. The flag lives for the rest
// of the session only, like the tab-scoped storage it replaces.
func (h *Handler) DismissPopup(c *gin.Context) {
	if err := h.store.DismissPopup(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		h.logger.Warn("dismiss popup", zap.Error(err))
		response.Internal(c, "failed to record dismissal")
		return
	}
	c.Status(http.StatusNoContent)
}

// Popup handles GET /me/popup.
func (h *Handler) Popup(c *gin.Context) {
	dismissed, err := h.store.PopupDismissed(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		h.logger.Warn("read popup flag", zap.Error(err))
		dismissed = false
	}
	response.OK(c, gin.H{"dismissed": dismissed})
}
