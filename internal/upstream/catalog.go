package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/learnova/gateway/internal/models"
)

// CatalogQuery carries list filters passed through to the backend.
type CatalogQuery struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

func (q CatalogQuery) values() url.Values {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// ListCourses fetches the course catalog.
func (c *Client) ListCourses(ctx context.Context, q CatalogQuery) ([]RawCourse, *models.Pagination, error) {
	var list []RawCourse
	p, err := c.do(ctx, http.MethodGet, "/courses", q.values(), "", nil, &list)
	if err != nil {
		return nil, nil, err
	}
	return list, p, nil
}

// GetCourseBySlug fetches one course by its slug.
func (c *Client) GetCourseBySlug(ctx context.Context, slug string) (*RawCourse, error) {
	var course RawCourse
	if _, err := c.do(ctx, http.MethodGet, "/courses/"+url.PathEscape(slug), nil, "", nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListEvents fetches all events, draft included; the mapper filters drafts
// before display.
func (c *Client) ListEvents(ctx context.Context) ([]RawEvent, error) {
	var list []RawEvent
	if _, err := c.do(ctx, http.MethodGet, "/events", nil, "", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FeaturedEvents fetches the featured strip. Callers treat failures as
// secondary: log and render without the strip.
func (c *Client) FeaturedEvents(ctx context.Context) ([]RawEvent, error) {
	var list []RawEvent
	if _, err := c.do(ctx, http.MethodGet, "/events/featured", nil, "", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetEventBySlug fetches one event by its slug.
func (c *Client) GetEventBySlug(ctx context.Context, slug string) (*RawEvent, error) {
	var event RawEvent
	if _, err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(slug), nil, "", nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ListPrograms fetches all programs.
func (c *Client) ListPrograms(ctx context.Context) ([]RawProgram, error) {
	var list []RawProgram
	if _, err := c.do(ctx, http.MethodGet, "/programs", nil, "", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetProgramBySlug fetches one program by its slug.
func (c *Client) GetProgramBySlug(ctx context.Context, slug string) (*RawProgram, error) {
	var program RawProgram
	if _, err := c.do(ctx, http.MethodGet, "/programs/"+url.PathEscape(slug), nil, "", nil, &program); err != nil {
		return nil, err
	}
	return &program, nil
}
