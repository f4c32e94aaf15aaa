package models

// Event statuses as reported by the backend. Draft events are filtered out
// before any list mapping.
const (
	EventStatusDraft     = "draft"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
)

// EventView is the flattened, display-ready representation of a backend
// event record.
type EventView struct {
	ID           string  `json:"id"`
	Slug         string  `json:"slug"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Location     string  `json:"location"`
	Image        string  `json:"image"`
	Cost         float64 `json:"cost"`
	CostINR      float64 `json:"costInr"`
	DisplayPrice string  `json:"displayPrice"`
	Attendees    int     `json:"attendees"`
	MaxAttendees int     `json:"maxAttendees"`
	Status       string  `json:"status"`
	// Badge is nil for ongoing/completed events; otherwise it carries the
	// raw status string (e.g. "upcoming", "cancelled").
	Badge *string `json:"badge"`
}
