package models

import "time"

// Enrollment links a student account to a course it has joined.
// At most one row exists per (student, course) pair.
type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	EnrolledAt time.Time `json:"enrolledAt" db:"enrolled_at"`
	Completed  bool      `json:"completed" db:"completed"`
}
