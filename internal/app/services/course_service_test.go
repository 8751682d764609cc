package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/askelund/learnly/internal/app/models"
	"github.com/askelund/learnly/internal/app/models/dto"
	"github.com/askelund/learnly/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func TestCreateCourseKeepsElementOrder(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), zerolog.Nop())

	course, err := svc.Create(context.Background(), &dto.CreateCourseRequest{
		CourseTitle:       "Go Basics",
		CourseDescription: strPtr("From zero to interfaces"),
		Elements: []dto.CourseElementPayload{
			{Type: models.ElementTypeText, Text: "Welcome"},
			{Type: models.ElementTypeInput, Label: "What does := do?", Answer: strPtr("declare and assign")},
			{Type: models.ElementTypeText, Text: "Next chapter"},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if course.CourseTitle != "Go Basics" {
		t.Errorf("title = %q", course.CourseTitle)
	}
	if len(course.Elements) != 3 {
		t.Fatalf("element count = %d, want 3", len(course.Elements))
	}
	wantTypes := []string{models.ElementTypeText, models.ElementTypeInput, models.ElementTypeText}
	for i, el := range course.Elements {
		if el.Type != wantTypes[i] {
			t.Errorf("element %d type = %q, want %q", i, el.Type, wantTypes[i])
		}
	}
}

func TestCreateCourseValidation(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), zerolog.Nop())
	ctx := context.Background()

	cases := []dto.CreateCourseRequest{
		{CourseTitle: "   "},
		{CourseTitle: "T", Elements: []dto.CourseElementPayload{{Type: "Video"}}},
		{CourseTitle: "T", Elements: []dto.CourseElementPayload{{Type: models.ElementTypeText, Text: ""}}},
		{CourseTitle: "T", Elements: []dto.CourseElementPayload{{Type: models.ElementTypeInput, Label: ""}}},
	}
	for _, req := range cases {
		if _, err := svc.Create(ctx, &req); !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("Create(%+v) err = %v, want validation error", req, err)
		}
	}
}

func TestGetUnknownCourse(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), zerolog.Nop())

	if _, err := svc.Get(context.Background(), 404); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("Get err = %v, want ErrCourseNotFound", err)
	}
}

func TestListAndDelete(t *testing.T) {
	svc := NewCourseService(newFakeCourseRepo(), zerolog.Nop())
	ctx := context.Background()

	first, err := svc.Create(ctx, &dto.CreateCourseRequest{CourseTitle: "First"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateCourseRequest{CourseTitle: "Second"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	courses, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("course count = %d, want 2", len(courses))
	}

	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, first.ID); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("second Delete err = %v, want ErrCourseNotFound", err)
	}

	courses, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(courses) != 1 || courses[0].CourseTitle != "Second" {
		t.Errorf("unexpected remaining courses: %+v", courses)
	}
}
