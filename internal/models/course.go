package models

// CourseView is the flattened, display-ready representation of a backend
// course record. Every field is always populated; missing upstream data is
// absorbed into defaults by the mapper, never surfaced as a hole.
type CourseView struct {
	ID              string   `json:"id"`
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	InstructorName  string   `json:"instructorName"`
	InstructorImage string   `json:"instructorImage"`
	Image           string   `json:"image"`
	Duration        string   `json:"duration"`
	Level           string   `json:"level"`
	Rating          float64  `json:"rating"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	Location        string   `json:"location"`
	Skills          []string `json:"skills"`
	EnrolledCount   int      `json:"enrolledCount"`
	MaxCapacity     int      `json:"maxCapacity"`
	Certificate     bool     `json:"certificate"`
	IsOnline        bool     `json:"isOnline"`
}
