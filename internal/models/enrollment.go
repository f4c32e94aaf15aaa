package models

// AccessLevel gates whether a viewer may see or actively consume a course.
type AccessLevel string

const (
	AccessNone  AccessLevel = "none"
	AccessView  AccessLevel = "view"
	AccessLearn AccessLevel = "learn"
)

// Enrollment is the backend-reported relationship between a student and a
// course.
type Enrollment struct {
	ID         string  `json:"id"`
	CourseID   string  `json:"courseId"`
	Status     string  `json:"status"`
	Progress   float64 `json:"progress"`
	EnrolledAt string  `json:"enrolledAt"`
}

// EnrollmentStatus is the raw result of the backend enrollment-status check.
type EnrollmentStatus struct {
	IsEnrolled bool        `json:"isEnrolled"`
	Status     string      `json:"status"`
	Enrollment *Enrollment `json:"enrollment"`
}

// Access is the derived per-course access decision for the current viewer.
type Access struct {
	Level      AccessLevel `json:"level"`
	Enrollment *Enrollment `json:"enrollment"`
	CanView    bool        `json:"canView"`
	CanLearn   bool        `json:"canLearn"`
}

// NoAccess is the zero-value decision used for anonymous viewers and for
// failed enrollment checks (fail closed).
func NoAccess() Access {
	return Access{Level: AccessNone, Enrollment: nil, CanView: false, CanLearn: false}
}
