package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/askelund/learnly/internal/app/models/dto"
	"github.com/askelund/learnly/internal/app/services"
	"github.com/askelund/learnly/internal/middleware"
)

// EnrollmentController handles enrollment endpoints. The student identity
// always comes from the validated token, never from the request body.
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// Enroll enrolls the caller in a course. Re-enrolling is not an error.
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	studentID, courseID, ok := c.identityAndCourse(ctx)
	if !ok {
		return
	}

	created, err := c.enrollmentService.Enroll(ctx.Request.Context(), studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !created {
		ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Already enrolled"})
		return
	}
	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "Enrolled successfully"})
}

// Unenroll removes the caller's enrollment in a course
func (c *EnrollmentController) Unenroll(ctx *gin.Context) {
	studentID, courseID, ok := c.identityAndCourse(ctx)
	if !ok {
		return
	}

	if err := c.enrollmentService.Unenroll(ctx.Request.Context(), studentID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Unenrolled successfully"})
}

// Status reports whether the caller is enrolled in a course
func (c *EnrollmentController) Status(ctx *gin.Context) {
	studentID, courseID, ok := c.identityAndCourse(ctx)
	if !ok {
		return
	}

	status, err := c.enrollmentService.Status(ctx.Request.Context(), studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, status)
}

// Complete marks the caller's enrollment as completed
func (c *EnrollmentController) Complete(ctx *gin.Context) {
	studentID, courseID, ok := c.identityAndCourse(ctx)
	if !ok {
		return
	}

	if err := c.enrollmentService.Complete(ctx.Request.Context(), studentID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Course marked as completed"})
}

// CompletionStatus reports the completed flag for the caller's enrollment
func (c *EnrollmentController) CompletionStatus(ctx *gin.Context) {
	studentID, courseID, ok := c.identityAndCourse(ctx)
	if !ok {
		return
	}

	completed, err := c.enrollmentService.CompletionStatus(ctx.Request.Context(), studentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CompletionStatusResponse{Completed: completed})
}

func (c *EnrollmentController) identityAndCourse(ctx *gin.Context) (studentID, courseID int64, ok bool) {
	studentID, ok = middleware.AccountID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return 0, 0, false
	}

	courseID, err := strconv.ParseInt(ctx.Param("courseId"), 10, 64)
	if err != nil || courseID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid course ID"))
		return 0, 0, false
	}

	return studentID, courseID, true
}
