package dto

// EnrollmentStatusResponse reports whether the caller is enrolled in a course.
// EnrolledAt is present only when enrolled.
type EnrollmentStatusResponse struct {
	Enrolled   bool    `json:"enrolled"`
	EnrolledAt *string `json:"enrolled_at,omitempty"`
}

// CompletionStatusResponse reports whether an enrolled course is completed
type CompletionStatusResponse struct {
	Completed bool `json:"completed"`
}
