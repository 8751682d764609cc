package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/askelund/learnly/internal/app/models"
)

// IAccountRepository defines account persistence operations
type IAccountRepository interface {
	Create(ctx context.Context, account *models.Account) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// ICourseRepository defines course persistence operations
type ICourseRepository interface {
	CreateWithElements(ctx context.Context, course *models.Course, elements []models.NewCourseElement) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetElements(ctx context.Context, courseID int64) ([]models.CourseElementContent, error)
	List(ctx context.Context) ([]models.Course, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// IEnrollmentRepository defines enrollment ledger operations
type IEnrollmentRepository interface {
	Create(ctx context.Context, studentID, courseID int64) error
	Get(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	Delete(ctx context.Context, studentID, courseID int64) error
	SetCompleted(ctx context.Context, studentID, courseID int64) error
}

// IXPRepository defines XP ledger operations
type IXPRepository interface {
	Create(ctx context.Context, award *models.XPAward) error
	Exists(ctx context.Context, userID, courseID int64) (bool, error)
	TotalForUser(ctx context.Context, userID int64) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	AccountRepository    *AccountRepository
	CourseRepository     *CourseRepository
	EnrollmentRepository *EnrollmentRepository
	XPRepository         *XPRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		AccountRepository:    NewAccountRepository(db),
		CourseRepository:     NewCourseRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		XPRepository:         NewXPRepository(db),
	}
}
