package services

import (
	"context"
	"time"

	"github.com/askelund/learnly/internal/app/models"
	"github.com/askelund/learnly/internal/pkg/apperrors"
)

// In-memory repository fakes. They enforce the same uniqueness rules the
// database constraints do, so services see identical error behavior.

type fakeAccountRepo struct {
	accounts map[string]*models.Account
	nextID   int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*models.Account), nextID: 1}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *models.Account) (int64, error) {
	if _, exists := r.accounts[account.Email]; exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	account.ID = r.nextID
	account.CreatedAt = time.Now()
	r.nextID++
	r.accounts[account.Email] = account
	return account.ID, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	account, exists := r.accounts[email]
	if !exists {
		return nil, apperrors.ErrAccountNotFound
	}
	return account, nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id int64) (*models.Account, error) {
	for _, account := range r.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, apperrors.ErrAccountNotFound
}

func (r *fakeAccountRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, exists := r.accounts[email]
	return exists, nil
}

type fakeCourseRepo struct {
	courses  map[int64]*models.Course
	elements map[int64][]models.CourseElementContent
	nextID   int64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:  make(map[int64]*models.Course),
		elements: make(map[int64][]models.CourseElementContent),
		nextID:   1,
	}
}

func (r *fakeCourseRepo) CreateWithElements(_ context.Context, course *models.Course, elements []models.NewCourseElement) error {
	course.ID = r.nextID
	course.CreatedAt = time.Now()
	r.nextID++
	r.courses[course.ID] = course

	stored := make([]models.CourseElementContent, 0, len(elements))
	for i, el := range elements {
		stored = append(stored, models.CourseElementContent{
			ID:     int64(i + 1),
			Type:   el.Type,
			Text:   el.Text,
			Label:  el.Label,
			Answer: el.Answer,
		})
	}
	r.elements[course.ID] = stored
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, exists := r.courses[id]
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (r *fakeCourseRepo) GetElements(_ context.Context, courseID int64) ([]models.CourseElementContent, error) {
	return r.elements[courseID], nil
}

func (r *fakeCourseRepo) List(_ context.Context) ([]models.Course, error) {
	var courses []models.Course
	for id := int64(1); id < r.nextID; id++ {
		if course, exists := r.courses[id]; exists {
			courses = append(courses, *course)
		}
	}
	return courses, nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	if _, exists := r.courses[id]; !exists {
		return apperrors.ErrCourseNotFound
	}
	delete(r.courses, id)
	delete(r.elements, id)
	return nil
}

func (r *fakeCourseRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, exists := r.courses[id]
	return exists, nil
}

type enrollmentKey struct {
	studentID int64
	courseID  int64
}

type fakeEnrollmentRepo struct {
	enrollments map[enrollmentKey]*models.Enrollment
	nextID      int64
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: make(map[enrollmentKey]*models.Enrollment), nextID: 1}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, studentID, courseID int64) error {
	key := enrollmentKey{studentID, courseID}
	if _, exists := r.enrollments[key]; exists {
		return apperrors.ErrAlreadyEnrolled
	}
	r.enrollments[key] = &models.Enrollment{
		ID:         r.nextID,
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	r.nextID++
	return nil
}

func (r *fakeEnrollmentRepo) Get(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	enrollment, exists := r.enrollments[enrollmentKey{studentID, courseID}]
	if !exists {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return enrollment, nil
}

func (r *fakeEnrollmentRepo) Delete(_ context.Context, studentID, courseID int64) error {
	key := enrollmentKey{studentID, courseID}
	if _, exists := r.enrollments[key]; !exists {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(r.enrollments, key)
	return nil
}

func (r *fakeEnrollmentRepo) SetCompleted(_ context.Context, studentID, courseID int64) error {
	enrollment, exists := r.enrollments[enrollmentKey{studentID, courseID}]
	if !exists {
		return apperrors.ErrEnrollmentNotFound
	}
	enrollment.Completed = true
	return nil
}

type fakeXPRepo struct {
	awards map[enrollmentKey]int64
}

func newFakeXPRepo() *fakeXPRepo {
	return &fakeXPRepo{awards: make(map[enrollmentKey]int64)}
}

func (r *fakeXPRepo) Create(_ context.Context, award *models.XPAward) error {
	key := enrollmentKey{award.UserID, award.CourseID}
	if _, exists := r.awards[key]; exists {
		return apperrors.ErrXPAlreadyAwarded
	}
	r.awards[key] = award.XPEarned
	return nil
}

func (r *fakeXPRepo) Exists(_ context.Context, userID, courseID int64) (bool, error) {
	_, exists := r.awards[enrollmentKey{userID, courseID}]
	return exists, nil
}

func (r *fakeXPRepo) TotalForUser(_ context.Context, userID int64) (int64, error) {
	var total int64
	for key, xp := range r.awards {
		if key.studentID == userID {
			total += xp
		}
	}
	return total, nil
}
