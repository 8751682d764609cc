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

// CourseController handles course authoring and retrieval endpoints
type CourseController struct {
	courseService services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

// Create stores a course with its ordered elements
func (c *CourseController) Create(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid course request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.FormatBindingError(err)))
		return
	}

	course, err := c.courseService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateCourseResponse{
		Message: "Course created successfully",
		Course:  *course,
	})
}

// List returns all courses
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.courseService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CourseListResponse{Courses: courses})
}

// Get returns one course with its elements
func (c *CourseController) Get(ctx *gin.Context) {
	courseID, ok := c.courseID(ctx)
	if !ok {
		return
	}

	course, err := c.courseService.Get(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, course)
}

// Delete removes a course and its dependent rows
func (c *CourseController) Delete(ctx *gin.Context) {
	courseID, ok := c.courseID(ctx)
	if !ok {
		return
	}

	if err := c.courseService.Delete(ctx.Request.Context(), courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Course deleted successfully"})
}

func (c *CourseController) courseID(ctx *gin.Context) (int64, bool) {
	courseID, err := strconv.ParseInt(ctx.Param("courseId"), 10, 64)
	if err != nil || courseID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid course ID"))
		return 0, false
	}
	return courseID, true
}
