package access

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/models"
	"github.com/learnova/gateway/internal/upstream"
)

type fakeChecker struct {
	calls  int
	status *models.EnrollmentStatus
	err    error
}

func (f *fakeChecker) EnrollmentStatus(ctx context.Context, token, courseID string) (*models.EnrollmentStatus, error) {
	f.calls++
	return f.status, f.err
}

func TestAnonymousViewerMakesNoNetworkCall(t *testing.T) {
	checker := &fakeChecker{status: &models.EnrollmentStatus{IsEnrolled: true, Status: "active"}}
	r := NewResolver(checker, zap.NewNop())

	got := r.Resolve(context.Background(), "", "c1", false)

	assert.Equal(t, models.NoAccess(), got)
	assert.False(t, got.CanView)
	assert.False(t, got.CanLearn)
	assert.Equal(t, 0, checker.calls)
}

func TestEmptyCourseIDMakesNoNetworkCall(t *testing.T) {
	checker := &fakeChecker{}
	r := NewResolver(checker, zap.NewNop())

	got := r.Resolve(context.Background(), "tok", "", true)

	assert.Equal(t, models.AccessNone, got.Level)
	assert.Equal(t, 0, checker.calls)
}

func TestResolveTiers(t *testing.T) {
	cases := []struct {
		name      string
		status    *models.EnrollmentStatus
		wantLevel models.AccessLevel
		canView   bool
		canLearn  bool
	}{
		{"active enrollment", &models.EnrollmentStatus{IsEnrolled: true, Status: "active"}, models.AccessLearn, true, true},
		{"pending enrollment", &models.EnrollmentStatus{IsEnrolled: true, Status: "pending"}, models.AccessView, true, false},
		{"expired enrollment", &models.EnrollmentStatus{IsEnrolled: true, Status: "expired"}, models.AccessView, true, false},
		{"not enrolled", &models.EnrollmentStatus{IsEnrolled: false}, models.AccessNone, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker := &fakeChecker{status: tc.status}
			r := NewResolver(checker, zap.NewNop())

			got := r.Resolve(context.Background(), "tok", "c1", true)

			assert.Equal(t, tc.wantLevel, got.Level)
			assert.Equal(t, tc.canView, got.CanView)
			assert.Equal(t, tc.canLearn, got.CanLearn)
			assert.Equal(t, 1, checker.calls)
		})
	}
}

func TestCheckerFailureFailsClosed(t *testing.T) {
	checker := &fakeChecker{err: errors.New("connection refused")}
	r := NewResolver(checker, zap.NewNop())

	got := r.Resolve(context.Background(), "tok", "c1", true)

	assert.Equal(t, models.NoAccess(), got)
}

func TestAuthErrorFailsClosed(t *testing.T) {
	checker := &fakeChecker{err: &upstream.APIError{StatusCode: http.StatusUnauthorized, Message: "token expired"}}
	r := NewResolver(checker, zap.NewNop())

	got := r.Resolve(context.Background(), "tok", "c1", true)

	assert.Equal(t, models.NoAccess(), got)
}

func TestDeriveCarriesEnrollment(t *testing.T) {
	enr := &models.Enrollment{ID: "e1", CourseID: "c1", Status: "active"}
	got := Derive(&models.EnrollmentStatus{IsEnrolled: true, Status: "active", Enrollment: enr})
	assert.Equal(t, enr, got.Enrollment)
}
