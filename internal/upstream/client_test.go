package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, zap.NewNop())
}

func TestListCoursesParsesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses", r.URL.Path)
		assert.Equal(t, "design", r.URL.Query().Get("category"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [{"_id":"c1","title":"UX Basics"},{"_id":"c2"}],
			"pagination": {"page":1,"limit":10,"total":2,"totalPages":1}
		}`))
	})

	list, p, err := c.ListCourses(context.Background(), CatalogQuery{Category: "design"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c1", list[0].ID)
	require.NotNil(t, list[0].Title)
	assert.Equal(t, "UX Basics", *list[0].Title)
	assert.Nil(t, list[1].Title)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Total)
}

func TestLogicalFailureBecomesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success": false, "message": "course not found"}`))
	})

	_, err := c.GetCourseBySlug(context.Background(), "nope")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "course not found", apiErr.Message)
	assert.False(t, IsAuthError(err))
}

func TestUnauthorizedFiresAuthExpiredCallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success": false, "message": "token expired"}`))
	})

	var expired []string
	c.OnAuthExpired(func(ctx context.Context, token string) {
		expired = append(expired, token)
	})

	_, err := c.EnrollmentStatus(context.Background(), "stale-token", "c1")
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.Equal(t, []string{"stale-token"}, expired)
}

func TestUnauthorizedWithoutTokenDoesNotFireCallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success": false, "message": "bad credentials"}`))
	})

	called := false
	c.OnAuthExpired(func(ctx context.Context, token string) { called = true })

	_, err := c.Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	assert.False(t, called, "anonymous 401s must not invalidate any session")
}

func TestLoginParsesAuthResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {"token":"up-token","student":{"id":"s1","email":"a@b.c","firstName":"Ada"}}
		}`))
	})

	res, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "up-token", res.Token)
	assert.Equal(t, "s1", res.Student.ID)
	assert.Equal(t, "Ada", res.Student.FirstName)
}

func TestEnrollmentStatusSendsBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success": true, "data": {"isEnrolled": true, "status": "active"}}`))
	})

	status, err := c.EnrollmentStatus(context.Background(), "tok-1", "c1")
	require.NoError(t, err)
	assert.True(t, status.IsEnrolled)
	assert.Equal(t, "active", status.Status)
}

func TestNotificationsNeverReturnsNilSlice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "data": {"unreadCount": 0}}`))
	})

	page, err := c.Notifications(context.Background(), "tok", 1, 20)
	require.NoError(t, err)
	assert.NotNil(t, page.Notifications)
	assert.Empty(t, page.Notifications)
}
