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

// XPController handles XP award and total endpoints
type XPController struct {
	xpService services.XPService
	logger    zerolog.Logger
}

// NewXPController creates a new XPController
func NewXPController(xpService services.XPService, logger zerolog.Logger) *XPController {
	return &XPController{
		xpService: xpService,
		logger:    logger,
	}
}

// Award records XP for the caller, once per course
func (c *XPController) Award(ctx *gin.Context) {
	userID, ok := middleware.AccountID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	var req dto.AddXPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid xp request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.FormatBindingError(err)))
		return
	}

	if err := c.xpService.Award(ctx.Request.Context(), userID, req.CourseID, req.XPEarned); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "XP added successfully"})
}

// Total returns the caller's summed XP
func (c *XPController) Total(ctx *gin.Context) {
	userID, ok := middleware.AccountID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	c.respondTotal(ctx, userID)
}

// TotalForUser returns the summed XP for an arbitrary user ID. A user with
// no awards reports zero rather than not-found.
func (c *XPController) TotalForUser(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid user ID"))
		return
	}

	c.respondTotal(ctx, userID)
}

func (c *XPController) respondTotal(ctx *gin.Context, userID int64) {
	total, err := c.xpService.Total(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TotalXPResponse{UserID: userID, TotalXP: total})
}
