package models

// XPAward is a one-time experience-point credit for a course.
// Write-once per (user, course); never incremented on repeat submissions.
type XPAward struct {
	ID       int64 `json:"id" db:"id"`
	UserID   int64 `json:"userId" db:"user_id"`
	CourseID int64 `json:"courseId" db:"course_id"`
	XPEarned int64 `json:"xpEarned" db:"xp_earned"`
}
