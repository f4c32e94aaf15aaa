package upstream

// Raw record shapes as the backend returns them. Every optional field is a
// pointer so arbitrarily sparse JSON decodes without losing the distinction
// between absent and zero; the mapper turns these into view models with
// guaranteed field presence.

// RawUserRef is the nested user document an instructor may link to.
type RawUserRef struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Image     *string `json:"image"`
}

// RawInstructor is the instructor block on a course record. Either the
// embedded name or the linked user document may be missing.
type RawInstructor struct {
	Name   *string     `json:"name"`
	Image  *string     `json:"image"`
	UserID *RawUserRef `json:"userId"`
}

// RawCourse is a backend course record.
type RawCourse struct {
	ID            string         `json:"_id"`
	Slug          *string        `json:"slug"`
	Title         *string        `json:"title"`
	Description   *string        `json:"description"`
	Instructor    *RawInstructor `json:"instructor"`
	Image         *string        `json:"image"`
	Duration      *string        `json:"duration"`
	Level         *string        `json:"level"`
	Rating        *float64       `json:"rating"`
	Price         *float64       `json:"price"`
	Category      *string        `json:"category"`
	Location      *string        `json:"location"`
	Skills        []string       `json:"skills"`
	EnrolledCount *int           `json:"enrolledCount"`
	MaxCapacity   *int           `json:"maxCapacity"`
	Certificate   *bool          `json:"certificate"`
	IsOnline      *bool          `json:"isOnline"`
}

// RawEvent is a backend event record.
type RawEvent struct {
	ID           string   `json:"_id"`
	Slug         *string  `json:"slug"`
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	StartDate    *string  `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	StartTime    *string  `json:"startTime"`
	EndTime      *string  `json:"endTime"`
	Location     *string  `json:"location"`
	Image        *string  `json:"image"`
	Cost         *float64 `json:"cost"`
	CostINR      *float64 `json:"costInr"`
	Attendees    *int     `json:"attendees"`
	MaxAttendees *int     `json:"maxAttendees"`
	Status       *string  `json:"status"`
}

// RawProgram is a backend program record (a bundle of courses).
type RawProgram struct {
	ID          string   `json:"_id"`
	Slug        *string  `json:"slug"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Duration    *string  `json:"duration"`
	Level       *string  `json:"level"`
	Price       *float64 `json:"price"`
	Courses     []string `json:"courses"`
	Category    *string  `json:"category"`
}
