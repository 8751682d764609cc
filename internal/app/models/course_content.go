package models

// NewCourseElement is the authoring input for one course element.
type NewCourseElement struct {
	Type   string
	Text   string
	Label  string
	Answer *string
}

// CourseElementContent is a course element resolved to its payload.
type CourseElementContent struct {
	ID     int64
	Type   string
	Text   string
	Label  string
	Answer *string
}
