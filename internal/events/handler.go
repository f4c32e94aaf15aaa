package events

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/mapper"
	"github.com/learnova/gateway/internal/models"
	"github.com/learnova/gateway/internal/upstream"
	"github.com/learnova/gateway/pkg/response"
)

// Handler serves the events pages.
type Handler struct {
	client *upstream.Client
	mapper *mapper.Mapper
	logger *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(client *upstream.Client, m *mapper.Mapper, logger *zap.Logger) *Handler {
	return &Handler{client: client, mapper: m, logger: logger}
}

// ListResponse is the events page payload: the primary list plus the
// featured strip.
type ListResponse struct {
	Events   []models.EventView `json:"events"`
	Featured []models.EventView `json:"featured"`
}

// List handles GET /events. The main list is primary data: a fetch failure
// surfaces as an error response. The featured strip is secondary: its
// failure is logged and the page renders without it.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	raws, err := h.client.ListEvents(ctx)
	if err != nil {
		h.logger.Error("list events", zap.Error(err))
		response.BadGateway(c, upstream.ErrorMessage(err, "failed to load events"))
		return
	}

	res := ListResponse{
		Events:   h.mapper.Events(raws),
		Featured: []models.EventView{},
	}

	featured, err := h.client.FeaturedEvents(ctx)
	if err != nil {
		h.logger.Warn("featured events unavailable", zap.Error(err))
	} else {
		res.Featured = h.mapper.Events(featured)
	}

	response.OK(c, res)
}

// GetBySlug handles GET /events/:slug. Draft events are not served.
func (h *Handler) GetBySlug(c *gin.Context) {
	raw, err := h.client.GetEventBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.logger.Warn("get event", zap.String("slug", c.Param("slug")), zap.Error(err))
		response.NotFound(c, upstream.ErrorMessage(err, "event not found"))
		return
	}
	if len(mapper.FilterDrafts([]upstream.RawEvent{*raw})) == 0 {
		response.NotFound(c, "event not found")
		return
	}
	response.OK(c, h.mapper.Event(*raw))
}
