package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/learnova/gateway/internal/models"
)

// EnrollmentStatus fetches the viewer's enrollment relationship with one
// course. Read-only; access derivation happens in the resolver.
func (c *Client) EnrollmentStatus(ctx context.Context, token, courseID string) (*models.EnrollmentStatus, error) {
	var status models.EnrollmentStatus
	p := "/enrollments/status/" + url.PathEscape(courseID)
	if _, err := c.do(ctx, http.MethodGet, p, nil, token, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
