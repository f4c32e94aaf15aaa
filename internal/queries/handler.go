package queries

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/middleware"
	"github.com/learnova/gateway/internal/models"
	"github.com/learnova/gateway/pkg/response"
)

// Handler serves the support-thread endpoints. All routes require an
// authenticated session; a student only ever sees their own threads.
type Handler struct {
	store  Store
	stats  *StatsSelector
	logger *zap.Logger
}

// NewHandler creates a queries handler.
func NewHandler(store Store, stats *StatsSelector, logger *zap.Logger) *Handler {
	return &Handler{store: store, stats: stats, logger: logger}
}

type createRequest struct {
	Subject string `json:"subject" binding:"required,min=3"`
	Content string `json:"content" binding:"required,min=1"`
}

type replyRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// List handles GET /queries.
func (h *Handler) List(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	threads, err := h.store.ListByStudent(c.Request.Context(), sess.Student.ID)
	if err != nil {
		h.logger.Error("list query threads", zap.Error(err))
		response.Internal(c, "failed to load queries")
		return
	}
	response.OK(c, threads)
}

// Stats handles GET /queries/stats.
func (h *Handler) Stats(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	counts, err := h.stats.Counts(c.Request.Context(), sess.Student.ID)
	if err != nil {
		h.logger.Error("query stats", zap.Error(err))
		response.Internal(c, "failed to load query stats")
		return
	}
	response.OK(c, counts)
}

// Get handles GET /queries/:id.
func (h *Handler) Get(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	thread, ok := h.ownedThread(c, sess.Student.ID)
	if !ok {
		return
	}
	response.OK(c, thread)
}

// Create handles POST /queries.
func (h *Handler) Create(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "subject and content are required")
		return
	}

	thread, err := h.store.Create(c.Request.Context(), sess.Student.ID, req.Subject, req.Content)
	if err != nil {
		h.logger.Error("create query thread", zap.Error(err))
		response.Internal(c, "failed to create query")
		return
	}
	response.Created(c, thread)
}

// Reply handles POST /queries/:id/messages.
func (h *Handler) Reply(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "content is required")
		return
	}

	thread, ok := h.ownedThread(c, sess.Student.ID)
	if !ok {
		return
	}

	updated, err := h.store.Reply(c.Request.Context(), thread.ID, models.SenderStudent, req.Content)
	if err != nil {
		if errors.Is(err, ErrResolved) {
			response.BadRequest(c, "query is already resolved")
			return
		}
		h.logger.Error("reply to query thread", zap.Error(err))
		response.Internal(c, "failed to send reply")
		return
	}
	response.OK(c, updated)
}

// Resolve handles PATCH /queries/:id/resolve.
func (h *Handler) Resolve(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	thread, ok := h.ownedThread(c, sess.Student.ID)
	if !ok {
		return
	}

	if err := h.store.Resolve(c.Request.Context(), thread.ID); err != nil {
		h.logger.Error("resolve query thread", zap.Error(err))
		response.Internal(c, "failed to resolve query")
		return
	}

	updated, err := h.store.Get(c.Request.Context(), thread.ID)
	if err != nil {
		h.logger.Error("reload query thread", zap.Error(err))
		response.Internal(c, "failed to load query")
		return
	}
	response.OK(c, updated)
}

// ownedThread loads the :id thread and checks it belongs to studentID.
// Threads owned by someone else are reported as not found, never forbidden,
// so thread IDs do not leak. Writes the error response on failure.
func (h *Handler) ownedThread(c *gin.Context, studentID string) (*models.QueryThread, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid query id")
		return nil, false
	}

	thread, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "query not found")
		return nil, false
	}
	if err != nil {
		h.logger.Error("load query thread", zap.Error(err))
		response.Internal(c, "failed to load query")
		return nil, false
	}
	if thread.StudentID != studentID {
		response.NotFound(c, "query not found")
		return nil, false
	}
	return thread, true
}
