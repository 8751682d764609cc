package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/askelund/learnly/internal/app/models"
	"github.com/askelund/learnly/internal/app/models/dto"
	"github.com/askelund/learnly/internal/app/repositories"
	"github.com/askelund/learnly/internal/pkg/apperrors"
)

// CourseService handles course authoring and retrieval
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseDetailResponse, error)
	Get(ctx context.Context, id int64) (*dto.CourseDetailResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	Delete(ctx context.Context, id int64) error
}

type courseService struct {
	courseRepo repositories.ICourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.ICourseRepository, logger zerolog.Logger) CourseService {
	return &courseService{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// Create validates and stores a course together with its ordered elements
func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseDetailResponse, error) {
	if strings.TrimSpace(req.CourseTitle) == "" {
		return nil, apperrors.NewValidationError("courseTitle is required")
	}

	elements := make([]models.NewCourseElement, 0, len(req.Elements))
	for _, payload := range req.Elements {
		switch payload.Type {
		case models.ElementTypeText:
			if strings.TrimSpace(payload.Text) == "" {
				return nil, apperrors.NewValidationError("Text elements require a text field")
			}
			elements = append(elements, models.NewCourseElement{
				Type: models.ElementTypeText,
				Text: payload.Text,
			})
		case models.ElementTypeInput:
			if strings.TrimSpace(payload.Label) == "" {
				return nil, apperrors.NewValidationError("Input elements require a label field")
			}
			elements = append(elements, models.NewCourseElement{
				Type:   models.ElementTypeInput,
				Label:  payload.Label,
				Answer: payload.Answer,
			})
		default:
			return nil, apperrors.NewValidationError("Unknown element type: " + payload.Type)
		}
	}

	course := &models.Course{
		Title:       req.CourseTitle,
		Description: req.CourseDescription,
	}
	if err := s.courseRepo.CreateWithElements(ctx, course, elements); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Str("title", course.Title).Msg("Course created")
	return s.Get(ctx, course.ID)
}

// Get returns a course with its elements resolved in authoring order
func (s *courseService) Get(ctx context.Context, id int64) (*dto.CourseDetailResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	elements, err := s.courseRepo.GetElements(ctx, id)
	if err != nil {
		return nil, err
	}

	payloads := make([]dto.CourseElementPayload, 0, len(elements))
	for _, el := range elements {
		payloads = append(payloads, dto.CourseElementPayload{
			ID:     el.ID,
			Type:   el.Type,
			Text:   el.Text,
			Label:  el.Label,
			Answer: el.Answer,
		})
	}

	return &dto.CourseDetailResponse{
		CourseResponse: courseToResponse(course),
		Elements:       payloads,
	}, nil
}

// List returns every course without element payloads
func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, courseToResponse(&courses[i]))
	}
	return responses, nil
}

// Delete removes a course and everything hanging off it
func (s *courseService) Delete(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}

func courseToResponse(course *models.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:                course.ID,
		CourseTitle:       course.Title,
		CourseDescription: course.Description,
		Created:           course.CreatedAt.Format(enrolledAtFormat),
	}
}
