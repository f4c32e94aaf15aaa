package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/learnova/gateway/internal/models"
)

type notificationData struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

// Notifications fetches one page of the viewer's notification feed.
func (c *Client) Notifications(ctx context.Context, token string, page, limit int) (*models.NotificationPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var data notificationData
	p, err := c.do(ctx, http.MethodGet, "/notifications", q, token, nil, &data)
	if err != nil {
		return nil, err
	}
	if data.Notifications == nil {
		data.Notifications = []models.Notification{}
	}
	return &models.NotificationPage{
		Notifications: data.Notifications,
		UnreadCount:   data.UnreadCount,
		Pagination:    p,
	}, nil
}
