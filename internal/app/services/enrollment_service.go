package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/askelund/learnly/internal/app/models/dto"
	"github.com/askelund/learnly/internal/app/repositories"
	"github.com/askelund/learnly/internal/pkg/apperrors"
)

const enrolledAtFormat = "2006-01-02 15:04:05"

// EnrollmentService handles the enrollment ledger
type EnrollmentService interface {
	// Enroll returns true when a new enrollment was created, false when the
	// student was already enrolled (idempotent success).
	Enroll(ctx context.Context, studentID, courseID int64) (bool, error)
	Unenroll(ctx context.Context, studentID, courseID int64) error
	Status(ctx context.Context, studentID, courseID int64) (*dto.EnrollmentStatusResponse, error)
	Complete(ctx context.Context, studentID, courseID int64) error
	CompletionStatus(ctx context.Context, studentID, courseID int64) (bool, error)
}

type enrollmentService struct {
	enrollmentRepo repositories.IEnrollmentRepository
	courseRepo     repositories.ICourseRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollmentRepo repositories.IEnrollmentRepository, courseRepo repositories.ICourseRepository, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		logger:         logger,
	}
}

// Enroll adds a student to a course. The course must exist. Repeat calls
// are safe: the existing-row check is an optimization and the unique
// constraint catches the race, both yielding the already-enrolled outcome.
func (s *enrollmentService) Enroll(ctx context.Context, studentID, courseID int64) (bool, error) {
	exists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return false, fmt.Errorf("error checking course: %w", err)
	}
	if !exists {
		return false, apperrors.ErrCourseNotFound
	}

	if _, err := s.enrollmentRepo.Get(ctx, studentID, courseID); err == nil {
		return false, nil
	} else if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}

	if err := s.enrollmentRepo.Create(ctx, studentID, courseID); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyEnrolled) {
			// Lost a race against a concurrent enroll for the same pair
			return false, nil
		}
		return false, err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student enrolled")
	return true, nil
}

// Unenroll removes a student from a course
func (s *enrollmentService) Unenroll(ctx context.Context, studentID, courseID int64) error {
	if err := s.enrollmentRepo.Delete(ctx, studentID, courseID); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student unenrolled")
	return nil
}

// Status reports enrollment as a pure read; absence is not an error
func (s *enrollmentService) Status(ctx context.Context, studentID, courseID int64) (*dto.EnrollmentStatusResponse, error) {
	enrollment, err := s.enrollmentRepo.Get(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return &dto.EnrollmentStatusResponse{Enrolled: false}, nil
		}
		return nil, err
	}

	enrolledAt := enrollment.EnrolledAt.Format(enrolledAtFormat)
	return &dto.EnrollmentStatusResponse{
		Enrolled:   true,
		EnrolledAt: &enrolledAt,
	}, nil
}

// Complete marks an existing enrollment as completed. Completing a course
// the student never enrolled in is an error, not an implicit enroll.
func (s *enrollmentService) Complete(ctx context.Context, studentID, courseID int64) error {
	if err := s.enrollmentRepo.SetCompleted(ctx, studentID, courseID); err != nil {
		return err
	}
	s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Course completed")
	return nil
}

// CompletionStatus reports the completed flag; a missing enrollment is
// signalled distinctly from enrolled-but-not-completed.
func (s *enrollmentService) CompletionStatus(ctx context.Context, studentID, courseID int64) (bool, error) {
	enrollment, err := s.enrollmentRepo.Get(ctx, studentID, courseID)
	if err != nil {
		return false, err
	}
	return enrollment.Completed, nil
}
