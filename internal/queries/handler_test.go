package queries

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/middleware"
	"github.com/learnova/gateway/internal/models"
	"github.com/learnova/gateway/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newQueriesRouter(store Store, studentID string) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextSession, session.Session{
			State:   session.StateAuthenticated,
			Student: &models.Student{ID: studentID, Email: studentID + "@example.com"},
		})
	})
	h := NewHandler(store, NewStatsSelector(store), zap.NewNop())
	r.GET("/queries", h.List)
	r.GET("/queries/stats", h.Stats)
	r.GET("/queries/:id", h.Get)
	r.POST("/queries", h.Create)
	r.POST("/queries/:id/messages", h.Reply)
	r.PATCH("/queries/:id/resolve", h.Resolve)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCreateThenListAndGet(t *testing.T) {
	store := NewMemoryStore()
	r := newQueriesRouter(store, "s1")

	w := do(r, http.MethodPost, "/queries", `{"subject":"Billing question","content":"Why two charges?"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data models.QueryThread `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(r, http.MethodGet, "/queries", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Billing question")

	w = do(r, http.MethodGet, "/queries/"+created.Data.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Why two charges?")
}

func TestForeignThreadReadsAsNotFound(t *testing.T) {
	store := NewMemoryStore()
	other, err := store.Create(context.Background(), "someone-else", "Not yours", "hidden")
	require.NoError(t, err)

	r := newQueriesRouter(store, "s1")

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/queries/"+other.ID.String(), "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/queries/"+other.ID.String()+"/messages", `{"content":"hi"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPatch, "/queries/"+other.ID.String()+"/resolve", "").Code)
}

func TestReplyToResolvedThreadIsBadRequest(t *testing.T) {
	store := NewMemoryStore()
	r := newQueriesRouter(store, "s1")

	thread, err := store.Create(context.Background(), "s1", "Subject here", "first")
	require.NoError(t, err)
	require.NoError(t, store.Resolve(context.Background(), thread.ID))

	w := do(r, http.MethodPost, "/queries/"+thread.ID.String()+"/messages", `{"content":"too late"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsEndpointCountsTabs(t *testing.T) {
	store := NewMemoryStore()
	r := newQueriesRouter(store, "s1")

	th, err := store.Create(context.Background(), "s1", "First subject", "hello")
	require.NoError(t, err)
	_, err = store.Create(context.Background(), "s1", "Second subject", "hello")
	require.NoError(t, err)
	require.NoError(t, store.Resolve(context.Background(), th.ID))

	w := do(r, http.MethodGet, "/queries/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"open":1`)
	assert.Contains(t, w.Body.String(), `"resolved":1`)
	assert.Contains(t, w.Body.String(), `"total":2`)
}

func TestInvalidThreadIDIsBadRequest(t *testing.T) {
	r := newQueriesRouter(NewMemoryStore(), "s1")
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/queries/not-a-uuid", "").Code)
}
