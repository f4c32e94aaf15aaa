// Package inquiries handles the public contact form. Submissions are
// forwarded to the backend; when a database is configured a copy is archived
// locally so marketing can query leads without going through the backend.
package inquiries

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/upstream"
	"github.com/learnova/gateway/pkg/response"
)

const archiveTimeout = 3 * time.Second

// Submitter forwards an inquiry to the backend.
type Submitter interface {
	SubmitInquiry(ctx context.Context, inq upstream.Inquiry) error
}

// Request is the contact-form payload.
type Request struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,min=7"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,min=10"`
}

// Handler serves the inquiry endpoint.
type Handler struct {
	submitter Submitter
	pool      *pgxpool.Pool
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewHandler creates an inquiries handler. pool may be nil; archiving is
// skipped without a database.
func NewHandler(submitter Submitter, pool *pgxpool.Pool, logger *zap.Logger) *Handler {
	return &Handler{
		submitter: submitter,
		pool:      pool,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Submit handles POST /inquiries. The backend submission is the source of
// truth; the local archive is best effort and never fails the request.
func (h *Handler) Submit(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		response.BadRequest(c, "name, a valid email, and a message of at least 10 characters are required")
		return
	}

	inq := upstream.Inquiry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.submitter.SubmitInquiry(c.Request.Context(), inq); err != nil {
		h.logger.Error("submit inquiry", zap.Error(err))
		response.BadGateway(c, upstream.ErrorMessage(err, "failed to submit inquiry"))
		return
	}

	h.archive(c.Request.Context(), req)

	response.Created(c, gin.H{"received": true})
}

func (h *Handler) archive(ctx context.Context, req Request) {
	if h.pool == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, archiveTimeout)
	defer cancel()

	const query = `INSERT INTO inquiries (id, name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := h.pool.Exec(ctx, query, uuid.New(), req.Name, req.Email, req.Phone, req.Subject, req.Message); err != nil {
		h.logger.Warn("archive inquiry", zap.Error(err))
	}
}
