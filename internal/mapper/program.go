package mapper

import (
	"github.com/learnova/gateway/internal/models"
	"github.com/learnova/gateway/internal/upstream"
)

// Program maps a raw program record into a ProgramView.
func (m *Mapper) Program(raw upstream.RawProgram) models.ProgramView {
	return models.ProgramView{
		ID:          raw.ID,
		Slug:        strOr(raw.Slug, raw.ID),
		Title:       strOr(raw.Title, "Untitled Program"),
		Description: strOr(raw.Description, ""),
		Image:       m.images.Resolve(strOr(raw.Image, "")),
		Duration:    strOr(raw.Duration, ""),
		Level:       strOr(raw.Level, DefaultLevel),
		Price:       floatOr(raw.Price, 0),
		CourseCount: len(raw.Courses),
		Category:    strOr(raw.Category, ""),
	}
}

// Programs maps a list of raw program records, preserving order.
func (m *Mapper) Programs(raws []upstream.RawProgram) []models.ProgramView {
	out := make([]models.ProgramView, 0, len(raws))
	for _, raw := range raws {
		out = append(out, m.Program(raw))
	}
	return out
}
