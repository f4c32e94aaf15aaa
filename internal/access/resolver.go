// Package access derives the viewer's per-course access level from
// backend-reported enrollment state.
package access

import (
	"context"

	"go.uber.org/zap"

	"github.com/learnova/gateway/internal/models"
	"github.com/learnova/gateway/internal/upstream"
)

// Enrollment status values relevant to access derivation.
const statusActive = "active"

// EnrollmentChecker is the one upstream call the resolver makes. Satisfied
// by *upstream.Client; tests substitute a counting fake.
type EnrollmentChecker interface {
	EnrollmentStatus(ctx context.Context, token, courseID string) (*models.EnrollmentStatus, error)
}

// Resolver computes access decisions. Read-only: one status fetch at most,
// no side effects.
type Resolver struct {
	checker EnrollmentChecker
	logger  *zap.Logger
}

// NewResolver creates a resolver.
func NewResolver(checker EnrollmentChecker, logger *zap.Logger) *Resolver {
	return &Resolver{checker: checker, logger: logger}
}

// Resolve returns the viewer's access decision for a course.
//
// Anonymous viewers and empty course IDs short-circuit to no access without
// touching the network. Enrollment-check failures also resolve to no access
// (fail closed) and are never propagated; they are logged at warn except
// for auth errors, which are expected during session transitions and only
// logged at debug.
func (r *Resolver) Resolve(ctx context.Context, token, courseID string, authenticated bool) models.Access {
	if courseID == "" || !authenticated {
		return models.NoAccess()
	}

	status, err := r.checker.EnrollmentStatus(ctx, token, courseID)
	if err != nil {
		if upstream.IsAuthError(err) {
			r.logger.Debug("enrollment check unauthorized", zap.String("course_id", courseID))
		} else {
			r.logger.Warn("enrollment check failed", zap.String("course_id", courseID), zap.Error(err))
		}
		return models.NoAccess()
	}

	return Derive(status)
}

// Derive maps a raw enrollment status onto an access decision:
// enrolled+active → learn, enrolled otherwise → view, not enrolled → none.
func Derive(status *models.EnrollmentStatus) models.Access {
	if status == nil || !status.IsEnrolled {
		return models.NoAccess()
	}
	if status.Status == statusActive {
		return models.Access{
			Level:      models.AccessLearn,
			Enrollment: status.Enrollment,
			CanView:    true,
			CanLearn:   true,
		}
	}
	return models.Access{
		Level:      models.AccessView,
		Enrollment: status.Enrollment,
		CanView:    true,
		CanLearn:   false,
	}
}
