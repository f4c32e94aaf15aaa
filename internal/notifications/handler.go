package notifications

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/middleware"
	"github.com/learnova/gateway/internal/upstream"
	"github.com/learnova/gateway/pkg/response"
)

const defaultLimit = 20

// Handler serves the viewer's notification feed.
type Handler struct {
	client *upstream.Client
	cache  *Cache
	logger *zap.Logger
}

// NewHandler creates a notifications handler.
func NewHandler(client *upstream.Client, cache *Cache, logger *zap.Logger) *Handler {
	return &Handler{client: client, cache: cache, logger: logger}
}

// List handles GET /notifications. On upstream failure the last cached page
// for this viewer is served instead, if one exists.
func (h *Handler) List(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	key := fmt.Sprintf("%s|%d|%d", sess.ID, page, limit)
	gen := h.cache.Begin(key)

	feed, err := h.client.Notifications(c.Request.Context(), sess.UpstreamToken, page, limit)
	if err != nil {
		if cached, ok := h.cache.Get(key); ok {
			h.logger.Warn("notifications refresh failed, serving cached page", zap.Error(err))
			response.OK(c, cached)
			return
		}
		h.logger.Error("notifications", zap.Error(err))
		response.BadGateway(c, upstream.ErrorMessage(err, "failed to load notifications"))
		return
	}

	h.cache.Complete(key, gen, feed)
	response.OK(c, feed)
}
