package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/askelund/learnly/internal/app/models"
	"github.com/askelund/learnly/internal/app/models/dto"
	"github.com/askelund/learnly/internal/app/repositories"
	"github.com/askelund/learnly/internal/pkg/apperrors"
	"github.com/askelund/learnly/internal/pkg/auth"
)

// AuthService handles registration, login and token refresh
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (int64, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(refreshToken string) (string, error)
}

type authService struct {
	accountRepo repositories.IAccountRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(accountRepo repositories.IAccountRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Register creates a new account with a hashed password and the default
// student role. The plaintext password is never stored or logged.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (int64, error) {
	if strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		req.Password == "" {
		return 0, apperrors.NewValidationError("Invalid request form")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return 0, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       models.RoleStudent,
	}

	id, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		// ErrEmailAlreadyExists passes through as a domain error
		return 0, err
	}

	s.logger.Info().Int64("accountID", id).Str("email", req.Email).Msg("Account registered")
	return id, nil
}

// Login authenticates an account and issues a token pair. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Email and password are required")
	}

	account, err := s.accountRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up account: %w", err)
	}

	ok, err := auth.CheckPassword(account.PasswordHash, req.Password)
	if err != nil {
		// Malformed stored hash is a data-integrity failure, not a mismatch
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, _, _, err := s.jwtService.GenerateTokenPair(account)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	s.logger.Info().Int64("accountID", account.ID).Msg("Account logged in")

	return &dto.TokenResponse{
		Message:      "Login successful",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh mints a new access token from a valid refresh token. No store
// access is involved; claims are carried over as-is.
func (s *authService) Refresh(refreshToken string) (string, error) {
	accessToken, err := s.jwtService.Refresh(refreshToken)
	if err != nil {
		// Expired, malformed and wrong-type tokens all collapse to one
		// unauthorized outcome at the API boundary.
		return "", apperrors.ErrTokenInvalid
	}
	return accessToken, nil
}
