package models

// ProgramView is the flattened, display-ready representation of a backend
// program record (a curated bundle of courses).
type ProgramView struct {
	ID          string  `json:"id"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Duration    string  `json:"duration"`
	Level       string  `json:"level"`
	Price       float64 `json:"price"`
	CourseCount int     `json:"courseCount"`
	Category    string  `json:"category"`
}
