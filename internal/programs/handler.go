package programs

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/mapper"
	"github.com/learnova/gateway/internal/upstream"
	"github.com/learnova/gateway/pkg/response"
)

// Handler serves the program pages.
type Handler struct {
	client *upstream.Client
	mapper *mapper.Mapper
	logger *zap.Logger
}

// NewHandler creates a programs handler.
func NewHandler(client *upstream.Client, m *mapper.Mapper, logger *zap.Logger) *Handler {
	return &Handler{client: client, mapper: m, logger: logger}
}

// List handles GET /programs.
func (h *Handler) List(c *gin.Context) {
	raws, err := h.client.ListPrograms(c.Request.Context())
	if err != nil {
		h.logger.Error("list programs", zap.Error(err))
		response.BadGateway(c, upstream.ErrorMessage(err, "failed to load programs"))
		return
	}
	response.OK(c, h.mapper.Programs(raws))
}

// GetBySlug handles GET /programs/:slug.
func (h *Handler) GetBySlug(c *gin.Context) {
	raw, err := h.client.GetProgramBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.logger.Warn("get program", zap.String("slug", c.Param("slug")), zap.Error(err))
		response.NotFound(c, upstream.ErrorMessage(err, "program not found"))
		return
	}
	response.OK(c, h.mapper.Program(*raw))
}
