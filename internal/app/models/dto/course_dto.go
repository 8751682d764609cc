package dto

// CourseElementPayload is one element of a course being created or returned.
// Text elements carry Text; Input elements carry Label and Answer.
type CourseElementPayload struct {
	ID     int64   `json:"id,omitempty"`
	Type   string  `json:"type" binding:"required"`
	Text   string  `json:"text,omitempty"`
	Label  string  `json:"label,omitempty"`
	Answer *string `json:"answer,omitempty"`
}

// CreateCourseRequest represents a course authoring request
type CreateCourseRequest struct {
	CourseTitle       string                 `json:"courseTitle" binding:"required"`
	CourseDescription *string                `json:"courseDescription"`
	Elements          []CourseElementPayload `json:"elements"`
}

// CourseResponse represents a course without its elements
type CourseResponse struct {
	ID                int64   `json:"id"`
	CourseTitle       string  `json:"courseTitle"`
	CourseDescription *string `json:"courseDescription"`
	Created           string  `json:"created,omitempty"`
}

// CourseDetailResponse represents a course with its resolved elements
type CourseDetailResponse struct {
	CourseResponse
	Elements []CourseElementPayload `json:"elements"`
}

// CourseListResponse wraps the full course list
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
}

// CreateCourseResponse confirms a created course
type CreateCourseResponse struct {
	Message string               `json:"message"`
	Course  CourseDetailResponse `json:"course"`
}
