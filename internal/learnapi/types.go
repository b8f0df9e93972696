package learnapi

// Student is a student profile managed by teachers.
type Student struct {
	ID                   string   `json:"id"`
	Username             string   `json:"username"`
	CGPA                 float64  `json:"cgpa"`
	NumArrears           int      `json:"numArrears"`
	InterestedSubjectIDs []string `json:"interestedSubjectIds"`
	FirstName            string   `json:"firstName,omitempty"`
	LastName             string   `json:"lastName,omitempty"`
	PresentClass         string   `json:"presentClass,omitempty"`
	Department           string   `json:"department,omitempty"`
	Semester             *int     `json:"semester,omitempty"`
	ContactEmail         string   `json:"contactEmail,omitempty"`
	Notes                string   `json:"notes,omitempty"`
}

// Name joins first and last name, falling back to the username.
func (s Student) Name() string {
	switch {
	case s.FirstName != "" && s.LastName != "":
		return s.FirstName + " " + s.LastName
	case s.FirstName != "":
		return s.FirstName
	case s.LastName != "":
		return s.LastName
	default:
		return s.Username
	}
}

// PlatformUser is an account that may not have a student profile yet.
type PlatformUser struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// StudentInput is the body for creating or updating a student. Nil pointers
// are sent as JSON null.
type StudentInput struct {
	Username     string   `json:"username"`
	CGPA         *float64 `json:"cgpa"`
	NumArrears   int      `json:"numArrears"`
	PresentClass string   `json:"presentClass"`
	Department   string   `json:"department"`
	Semester     *int     `json:"semester"`
	ContactEmail string   `json:"contactEmail"`
	Notes        string   `json:"notes"`
}

// Subject is a course subject.
type Subject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MergeRoster appends users that have no student profile as empty profiles,
// keyed by username.
func MergeRoster(students []Student, users []PlatformUser) []Student {
	seen := make(map[string]bool, len(students))
	out := make([]Student, 0, len(students)+len(users))
	for _, s := range students {
		seen[s.Username] = true
		out = append(out, s)
	}
	for _, u := range users {
		if seen[u.Username] {
			continue
		}
		seen[u.Username] = true
		out = append(out, Student{
			ID:                   u.Username,
			Username:             u.Username,
			InterestedSubjectIDs: []string{},
			FirstName:            u.FirstName,
			LastName:             u.LastName,
			ContactEmail:         u.Email,
		})
	}
	return out
}
