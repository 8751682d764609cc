package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/askelund/learnly/internal/app/models"
)

// Token types embedded in claims; a refresh token is never accepted
// where an access token is required and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWT errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
	ErrWrongTokenUse = errors.New("token used for wrong purpose")
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey       string
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
	TokenIssuer     string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// Claims defines the identity carried by every token. Display fields are
// denormalized so authenticated requests need no account lookup.
type Claims struct {
	AccountID int64  `json:"accountId"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	RoleID    int64  `json:"roleId"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}

// GenerateTokenPair creates a signed access/refresh token pair for an account.
func (s *JWTService) GenerateTokenPair(account *models.Account) (accessToken, refreshToken string, expiresIn, refreshExpiresIn int64, err error) {
	accessToken, err = s.sign(account, TokenTypeAccess, s.config.AccessTokenExp)
	if err != nil {
		return "", "", 0, 0, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, err = s.sign(account, TokenTypeRefresh, s.config.RefreshTokenExp)
	if err != nil {
		return "", "", 0, 0, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return accessToken, refreshToken,
		int64(s.config.AccessTokenExp.Seconds()),
		int64(s.config.RefreshTokenExp.Seconds()),
		nil
}

// Refresh validates a refresh token and mints a new access token carrying the
// same identity claims. No store round-trip is involved; claims may go stale
// within the refresh window, which the short access lifetime bounds.
func (s *JWTService) Refresh(refreshToken string) (string, error) {
	claims, err := s.ValidateToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	account := &models.Account{
		ID:       claims.AccountID,
		Email:    claims.Email,
		FullName: claims.FullName,
		RoleID:   claims.RoleID,
	}
	return s.sign(account, TokenTypeAccess, s.config.AccessTokenExp)
}

// ValidateToken validates a token string and checks its embedded type.
func (s *JWTService) ValidateToken(tokenString, wantType string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.AccountID <= 0 || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrWrongTokenUse
	}

	return claims, nil
}

// ExtractBearerToken extracts the token from an Authorization header value.
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}
	// Raw token without the Bearer prefix is accepted.
	return authHeader, nil
}

func (s *JWTService) sign(account *models.Account, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: account.ID,
		Email:     account.Email,
		FullName:  account.FullName,
		RoleID:    account.RoleID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   fmt.Sprintf("%d", account.ID),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SecretKey))
}
