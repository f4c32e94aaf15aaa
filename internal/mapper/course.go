// Package mapper normalizes raw backend records into flat, display-ready
// view models. Mapping is pure: no I/O, no errors. Missing or malformed
// optional data is absorbed into defaults, never surfaced as failure.
package mapper

import (
	"github.com/learnova/gateway/internal/models"
	"github.com/learnova/gateway/internal/upstream"
)

// Defaults applied when the backend record omits a field.
const (
	DefaultLevel      = "Beginner"
	DefaultInstructor = "Instructor"
)

// Mapper converts raw upstream records into view models.
type Mapper struct {
	images *ImageResolver
}

// New creates a mapper using the given image resolver.
func New(images *ImageResolver) *Mapper {
	return &Mapper{images: images}
}

// Course maps a raw course record into a CourseView. Every field of the
// result is populated.
func (m *Mapper) Course(raw upstream.RawCourse) models.CourseView {
	return models.CourseView{
		ID:              raw.ID,
		Slug:            strOr(raw.Slug, raw.ID),
		Title:           strOr(raw.Title, "Untitled Course"),
		Description:     strOr(raw.Description, ""),
		InstructorName:  instructorName(raw.Instructor),
		InstructorImage: m.images.Resolve(instructorImage(raw.Instructor)),
		Image:           m.images.Resolve(strOr(raw.Image, "")),
		Duration:        strOr(raw.Duration, ""),
		Level:           strOr(raw.Level, DefaultLevel),
		Rating:          floatOr(raw.Rating, 0),
		Price:           floatOr(raw.Price, 0),
		Category:        strOr(raw.Category, ""),
		Location:        strOr(raw.Location, "Online"),
		Skills:          sliceOr(raw.Skills),
		EnrolledCount:   intOr(raw.EnrolledCount, 0),
		MaxCapacity:     intOr(raw.MaxCapacity, 0),
		Certificate:     boolOr(raw.Certificate, false),
		IsOnline:        boolOr(raw.IsOnline, true),
	}
}

// Courses maps a list of raw course records, preserving order.
func (m *Mapper) Courses(raws []upstream.RawCourse) []models.CourseView {
	out := make([]models.CourseView, 0, len(raws))
	for _, raw := range raws {
		out = append(out, m.Course(raw))
	}
	return out
}

// instructorName applies the display-name fallback chain: "first last" when
// both parts of the linked user are present, else the embedded instructor
// name, else the literal default.
func instructorName(ins *upstream.RawInstructor) string {
	if ins != nil && ins.UserID != nil {
		first := strOr(ins.UserID.FirstName, "")
		last := strOr(ins.UserID.LastName, "")
		if first != "" && last != "" {
			return first + " " + last
		}
	}
	if ins != nil {
		if name := strOr(ins.Name, ""); name != "" {
			return name
		}
	}
	return DefaultInstructor
}

func instructorImage(ins *upstream.RawInstructor) string {
	if ins == nil {
		return ""
	}
	var linked string
	if ins.UserID != nil {
		linked = strOr(ins.UserID.Image, "")
	}
	return firstNonEmpty(strOr(ins.Image, ""), linked)
}
