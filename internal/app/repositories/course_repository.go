package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/askelund/learnly/internal/app/models"
	"github.com/askelund/learnly/internal/db"
	"github.com/askelund/learnly/internal/pkg/apperrors"
)

// CourseRepository handles course and course element database operations
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// CreateWithElements inserts a course and all its elements in one
// transaction. Any failure rolls the whole course back, so a link row can
// never persist without its payload or parent.
func (r *CourseRepository) CreateWithElements(ctx context.Context, course *models.Course, elements []models.NewCourseElement) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO courses (title, description)
			VALUES ($1, $2)
			RETURNING id, created_at`,
			course.Title, course.Description).Scan(&course.ID, &course.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating course: %w", err)
		}

		for i, element := range elements {
			var elementID int64
			switch element.Type {
			case models.ElementTypeText:
				err = tx.QueryRow(ctx, `
					INSERT INTO text_elements (body) VALUES ($1) RETURNING id`,
					element.Text).Scan(&elementID)
			case models.ElementTypeInput:
				err = tx.QueryRow(ctx, `
					INSERT INTO input_elements (label, answer) VALUES ($1, $2) RETURNING id`,
					element.Label, element.Answer).Scan(&elementID)
			default:
				return apperrors.ErrInvalidElementType
			}
			if err != nil {
				return fmt.Errorf("error creating %s element: %w", element.Type, err)
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO course_elements (course_id, element_id, element_type, position)
				VALUES ($1, $2, $3, $4)`,
				course.ID, elementID, element.Type, i)
			if err != nil {
				return fmt.Errorf("error linking course element: %w", err)
			}
		}

		return nil
	})
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course := &models.Course{}
	err := r.db.QueryRow(ctx, `
		SELECT id, title, description, created_at
		FROM courses
		WHERE id = $1`,
		id).Scan(&course.ID, &course.Title, &course.Description, &course.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetElements returns a course's elements in order, each resolved to its payload
func (r *CourseRepository) GetElements(ctx context.Context, courseID int64) ([]models.CourseElementContent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ce.id, ce.element_type,
		       COALESCE(te.body, ''), COALESCE(ie.label, ''), ie.answer
		FROM course_elements ce
		LEFT JOIN text_elements te ON ce.element_type = 'Text' AND te.id = ce.element_id
		LEFT JOIN input_elements ie ON ce.element_type = 'Input' AND ie.id = ce.element_id
		WHERE ce.course_id = $1
		ORDER BY ce.position`,
		courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course elements: %w", err)
	}
	defer rows.Close()

	var elements []models.CourseElementContent
	for rows.Next() {
		var el models.CourseElementContent
		if err := rows.Scan(&el.ID, &el.Type, &el.Text, &el.Label, &el.Answer); err != nil {
			return nil, fmt.Errorf("error scanning course element: %w", err)
		}
		elements = append(elements, el)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course elements: %w", err)
	}

	return elements, nil
}

// List returns all courses
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, created_at
		FROM courses
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Title, &course.Description, &course.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	return courses, nil
}

// Delete removes a course. Elements, enrollments and XP awards referencing
// it go with it via ON DELETE CASCADE.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Exists checks if a course exists
func (r *CourseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`,
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking course: %w", err)
	}

	return exists, nil
}
