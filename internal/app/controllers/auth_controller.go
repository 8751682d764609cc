// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/askelund/learnly/internal/app/models/dto"
	"github.com/askelund/learnly/internal/app/services"
	"github.com/askelund/learnly/internal/middleware"
	"github.com/askelund/learnly/internal/pkg/auth"
)

// AuthController handles registration, login and token refresh
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Register handles account registration
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.FormatBindingError(err)))
		return
	}

	if _, err := c.authService.Register(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.MessageResponse{Message: "User created successfully"})
}

// Login authenticates an account and returns a token pair
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.FormatBindingError(err)))
		return
	}

	tokens, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tokens)
}

// RefreshToken exchanges a valid refresh token for a new access token.
// The refresh token travels in the Authorization header like any other
// bearer credential.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authorization header missing"))
		return
	}

	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid authorization header"))
		return
	}

	accessToken, err := c.authService.Refresh(tokenString)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RefreshResponse{AccessToken: accessToken})
}
