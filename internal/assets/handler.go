// Package assets signs download URLs for protected per-student files such as
// certificates and payment receipts. Objects live under the student's own
// prefix; a viewer can only ever sign their own files.
package assets

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/middleware"
	"github.com/learnova/gateway/pkg/response"
	"github.com/learnova/gateway/pkg/storage"
)

// Signer issues pre-signed download URLs.
type Signer interface {
	GenerateDownloadURL(ctx context.Context, key string) (string, error)
	PresignExpiry() time.Duration
}

// Handler serves asset-signing endpoints.
type Handler struct {
	signer Signer
	logger *zap.Logger
}

// NewHandler creates an assets handler. signer may be nil when object
// storage is not configured; signing then reports unavailable.
func NewHandler(signer Signer, logger *zap.Logger) *Handler {
	return &Handler{signer: signer, logger: logger}
}

// Sign handles GET /assets/sign?file=certificate.pdf. The object key is
// always derived from the session's student ID, never taken from the client.
func (h *Handler) Sign(c *gin.Context) {
	if h.signer == nil {
		response.ServiceUnavailable(c, "asset downloads are not configured")
		return
	}

	file := c.Query("file")
	if file == "" {
		response.BadRequest(c, "file is required")
		return
	}

	sess := middleware.CurrentSession(c)
	key := storage.AssetKey(sess.Student.ID, file)

	url, err := h.signer.GenerateDownloadURL(c.Request.Context(), key)
	if err != nil {
		h.logger.Error("presign asset", zap.String("key", key), zap.Error(err))
		response.Internal(c, "failed to sign download")
		return
	}

	response.OK(c, gin.H{
		"url":       url,
		"expiresIn": int(h.signer.PresignExpiry().Seconds()),
	})
}
