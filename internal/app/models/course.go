package models

import "time"

// Element types stored in course_elements.element_type
const (
	ElementTypeText  = "Text"
	ElementTypeInput = "Input"
)

// Course represents an authored course
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"courseTitle" db:"title"`
	Description *string   `json:"courseDescription,omitempty" db:"description"` // Nullable
	CreatedAt   time.Time `json:"created" db:"created_at"`
}

// CourseElement links a course to one of its content elements, in order.
// The payload lives in text_elements or input_elements depending on Type.
type CourseElement struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	ElementID int64     `json:"elementId" db:"element_id"`
	Type      string    `json:"type" db:"element_type"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// TextElement is the payload of a 'Text' course element
type TextElement struct {
	ID   int64  `json:"id" db:"id"`
	Body string `json:"text" db:"body"`
}

// InputElement is the payload of an 'Input' course element
type InputElement struct {
	ID     int64   `json:"id" db:"id"`
	Label  string  `json:"label" db:"label"`
	Answer *string `json:"answer,omitempty" db:"answer"` // Nullable
}
