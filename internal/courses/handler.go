package courses

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/access"
	"github.com/learnova/gateway/internal/mapper"
	"github.com/learnova/gateway/internal/middleware"
	"github.com/learnova/gateway/internal/upstream"
	"github.com/learnova/gateway/pkg/response"
)

// Handler serves the course catalog pages.
type Handler struct {
	client   *upstream.Client
	mapper   *mapper.Mapper
	resolver *access.Resolver
	logger   *zap.Logger
}

// NewHandler creates a course handler.
func NewHandler(client *upstream.Client, m *mapper.Mapper, resolver *access.Resolver, logger *zap.Logger) *Handler {
	return &Handler{client: client, mapper: m, resolver: resolver, logger: logger}
}

// List handles GET /courses. Category/search/page filters pass through to
// the backend unchanged.
func (h *Handler) List(c *gin.Context) {
	q := upstream.CatalogQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     intQuery(c, "page"),
		Limit:    intQuery(c, "limit"),
	}
	raws, p, err := h.client.ListCourses(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("list courses", zap.Error(err))
		response.BadGateway(c, upstream.ErrorMessage(err, "failed to load courses"))
		return
	}
	response.OKPaged(c, h.mapper.Courses(raws), p)
}

// GetBySlug handles GET /courses/:slug.
func (h *Handler) GetBySlug(c *gin.Context) {
	raw, err := h.client.GetCourseBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.logger.Warn("get course", zap.String("slug", c.Param("slug")), zap.Error(err))
		response.NotFound(c, upstream.ErrorMessage(err, "course not found"))
		return
	}
	response.OK(c, h.mapper.Course(*raw))
}

// Access handles GET /enrollments/:courseId/access. Anonymous viewers get
// the no-access decision without an upstream call; failures fail closed,
// never error.
func (h *Handler) Access(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	acc := h.resolver.Resolve(c.Request.Context(), sess.UpstreamToken, c.Param("courseId"), sess.IsAuthenticated())
	response.OK(c, acc)
}

func intQuery(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}
