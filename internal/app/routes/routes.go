package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/askelund/learnly/internal/app/controllers"
	"github.com/askelund/learnly/internal/middleware"
	"github.com/askelund/learnly/internal/obs"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	xpController *controllers.XPController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/metrics", gin.WrapH(obs.Handler()))

	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes
	v1.POST("/register", authController.Register)
	v1.POST("/login", authController.Login)
	v1.POST("/refresh-token", authController.RefreshToken)

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		courses := authenticated.Group("/courses")
		{
			courses.POST("", courseController.Create)
			courses.GET("", courseController.List)
			courses.GET("/:courseId", courseController.Get)
			courses.DELETE("/:courseId", courseController.Delete)
		}

		// Enrollment paths identify the course; the student is always
		// the caller.
		enrollment := authenticated.Group("/course/enrollment/:courseId")
		{
			enrollment.POST("", enrollmentController.Enroll)
			enrollment.DELETE("", enrollmentController.Unenroll)
			enrollment.GET("", enrollmentController.Status)
			enrollment.POST("/complete", enrollmentController.Complete)
			enrollment.GET("/complete", enrollmentController.CompletionStatus)
		}

		xp := authenticated.Group("/xp")
		{
			xp.POST("", xpController.Award)
			xp.GET("/total", xpController.Total)
			xp.GET("/total/:userId", xpController.TotalForUser)
		}
	}
}
