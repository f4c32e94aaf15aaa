package models

// Student is the authenticated user record as returned by the backend auth
// endpoints and held by the session store.
type Student struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Image     string `json:"image"`
	Phone     string `json:"phone"`
}

// DisplayName returns "first last" with either part optional, falling back
// to the email local part when both are missing.
func (s Student) DisplayName() string {
	switch {
	case s.FirstName != "" && s.LastName != "":
		return s.FirstName + " " + s.LastName
	case s.FirstName != "":
		return s.FirstName
	case s.LastName != "":
		return s.LastName
	default:
		return s.Email
	}
}
