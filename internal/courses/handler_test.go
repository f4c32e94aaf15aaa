package courses

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/access"
	"github.com/learnova/gateway/internal/mapper"
	"github.com/learnova/gateway/internal/middleware"
	"github.com/learnova/gateway/internal/models"
	"github.com/learnova/gateway/internal/session"
	"github.com/learnova/gateway/internal/upstream"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCoursesRouter(t *testing.T, backend http.HandlerFunc, sess *session.Session) *gin.Engine {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := upstream.NewClient(srv.URL, 5*time.Second, zap.NewNop())
	m := mapper.New(mapper.NewImageResolver("https://cdn.test"))
	h := NewHandler(client, m, access.NewResolver(client, zap.NewNop()), zap.NewNop())

	r := gin.New()
	if sess != nil {
		r.Use(func(c *gin.Context) { c.Set(middleware.ContextSession, *sess) })
	}
	r.GET("/courses", h.List)
	r.GET("/courses/:slug", h.GetBySlug)
	r.GET("/enrollments/:courseId/access", h.Access)
	return r
}

func TestListMapsSparseRecords(t *testing.T) {
	r := newCoursesRouter(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"c1"}],"pagination":{"page":1,"limit":10,"total":1,"totalPages":1}}`))
	}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success    bool                `json:"success"`
		Data       []models.CourseView `json:"data"`
		Pagination *models.Pagination  `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, mapper.DefaultLevel, body.Data[0].Level)
	assert.Equal(t, mapper.DefaultInstructor, body.Data[0].InstructorName)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 1, body.Pagination.Total)
}

func TestAccessAnonymousSkipsUpstream(t *testing.T) {
	var calls int64
	r := newCoursesRouter(t, func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt64(&calls, 1)
		_, _ = w.Write([]byte(`{"success":true,"data":{"isEnrolled":true,"status":"active"}}`))
	}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/enrollments/c1/access", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data models.Access `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, models.AccessNone, body.Data.Level)
	assert.False(t, body.Data.CanView)
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

func TestAccessAuthenticatedLearner(t *testing.T) {
	sess := session.Session{
		State:         session.StateAuthenticated,
		Student:       &models.Student{ID: "s1", Email: "a@b.c"},
		UpstreamToken: "up-token",
	}
	r := newCoursesRouter(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer up-token", req.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"isEnrolled":true,"status":"active"}}`))
	}, &sess)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/enrollments/c1/access", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data models.Access `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, models.AccessLearn, body.Data.Level)
	assert.True(t, body.Data.CanLearn)
}

func TestAccessEnrollmentFailureFailsClosed(t *testing.T) {
	sess := session.Session{
		State:         session.StateAuthenticated,
		Student:       &models.Student{ID: "s1"},
		UpstreamToken: "up-token",
	}
	r := newCoursesRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"boom"}`))
	}, &sess)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/enrollments/c1/access", nil))

	require.Equal(t, http.StatusOK, w.Code, "enrollment failures must not surface as errors")
	var body struct {
		Data models.Access `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, models.AccessNone, body.Data.Level)
}
