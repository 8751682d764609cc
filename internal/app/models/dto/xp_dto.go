package dto

// AddXPRequest represents a one-time XP submission for a course.
// binding:required also rejects zero values, matching the contract that a
// missing or zero course_id/xp_earned is a bad request.
type AddXPRequest struct {
	CourseID int64 `json:"course_id" binding:"required"`
	XPEarned int64 `json:"xp_earned" binding:"required"`
}

// TotalXPResponse is the summed XP for an account
type TotalXPResponse struct {
	UserID  int64 `json:"user_id"`
	TotalXP int64 `json:"total_xp"`
}
