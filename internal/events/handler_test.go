package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/mapper"
	"github.com/learnova/gateway/internal/upstream"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pageBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Events []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"events"`
		Featured []struct {
			ID string `json:"id"`
		} `json:"featured"`
	} `json:"data"`
}

func newEventsRouter(t *testing.T, backend http.HandlerFunc) *gin.Engine {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := upstream.NewClient(srv.URL, 5*time.Second, zap.NewNop())
	h := NewHandler(client, mapper.New(mapper.NewImageResolver("")), zap.NewNop())

	r := gin.New()
	r.GET("/events", h.List)
	r.GET("/events/:slug", h.GetBySlug)
	return r
}

func TestListFiltersDraftsAndSurvivesFeaturedFailure(t *testing.T) {
	r := newEventsRouter(t, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/events":
			_, _ = w.Write([]byte(`{"success":true,"data":[
				{"_id":"a","status":"ongoing"},
				{"_id":"b","status":"draft"},
				{"_id":"c","status":"upcoming"}
			]}`))
		case "/events/featured":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"message":"boom"}`))
		default:
			http.NotFound(w, req)
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body pageBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data.Events, 2)
	assert.Equal(t, "a", body.Data.Events[0].ID)
	assert.Equal(t, "c", body.Data.Events[1].ID)
	assert.NotNil(t, body.Data.Featured)
	assert.Empty(t, body.Data.Featured)
}

func TestListPrimaryFailureSurfacesUpstreamMessage(t *testing.T) {
	r := newEventsRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success":false,"message":"events service down"}`))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

	require.Equal(t, http.StatusBadGateway, w.Code)
	var body pageBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "events service down", body.Message)
}

func TestGetBySlugHidesDrafts(t *testing.T) {
	r := newEventsRouter(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"_id":"d1","slug":"secret","status":"draft"}}`))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/secret", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
