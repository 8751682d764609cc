package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/askelund/learnly/internal/app/models"
	"github.com/askelund/learnly/internal/app/repositories"
	"github.com/askelund/learnly/internal/pkg/apperrors"
)

// XPService handles the write-once XP ledger
type XPService interface {
	Award(ctx context.Context, userID, courseID, xpEarned int64) error
	Total(ctx context.Context, userID int64) (int64, error)
}

type xpService struct {
	xpRepo repositories.IXPRepository
	logger zerolog.Logger
}

// NewXPService creates a new XPService
func NewXPService(xpRepo repositories.IXPRepository, logger zerolog.Logger) XPService {
	return &xpService{
		xpRepo: xpRepo,
		logger: logger,
	}
}

// Award records XP earned by a user for a course, at most once per pair.
// The pre-check keeps the common duplicate path off the insert; the unique
// constraint settles concurrent attempts, so both paths end the same way.
func (s *xpService) Award(ctx context.Context, userID, courseID, xpEarned int64) error {
	if xpEarned <= 0 {
		return apperrors.NewValidationError("xp_earned must be positive")
	}

	exists, err := s.xpRepo.Exists(ctx, userID, courseID)
	if err != nil {
		return fmt.Errorf("error checking xp award: %w", err)
	}
	if exists {
		return apperrors.ErrXPAlreadyAwarded
	}

	award := &models.XPAward{
		UserID:   userID,
		CourseID: courseID,
		XPEarned: xpEarned,
	}
	if err := s.xpRepo.Create(ctx, award); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Int64("courseID", courseID).Int64("xpEarned", xpEarned).Msg("XP awarded")
	return nil
}

// Total sums all XP a user has earned across courses
func (s *xpService) Total(ctx context.Context, userID int64) (int64, error) {
	return s.xpRepo.TotalForUser(ctx, userID)
}
