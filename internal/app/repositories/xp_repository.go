package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/askelund/learnly/internal/app/models"
	"github.com/askelund/learnly/internal/pkg/apperrors"
	"github.com/askelund/learnly/internal/pkg/dberrors"
	"github.com/askelund/learnly/internal/pkg/logger"
)

// XPRepository handles the XP ledger
type XPRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewXPRepository creates a new XPRepository
func NewXPRepository(db *pgxpool.Pool) *XPRepository {
	return &XPRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an XP award. Awards are write-once per (user, course):
// the unique constraint turns any repeat insert, including concurrent ones,
// into ErrXPAlreadyAwarded.
func (r *XPRepository) Create(ctx context.Context, award *models.XPAward) error {
	sql, args, err := r.sb.Insert("xp_awards").
		Columns("user_id", "course_id", "xp_earned").
		Values(award.UserID, award.CourseID, award.XPEarned).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create xp award SQL")
		return fmt.Errorf("failed to build create xp award query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "xp_awards_user_id_course_id_key") {
			return apperrors.ErrXPAlreadyAwarded
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrInvalidReference
		}
		logger.Error().Err(err).Int64("userID", award.UserID).Int64("courseID", award.CourseID).Msg("Error executing create xp award query")
		return fmt.Errorf("error creating xp award: %w", err)
	}

	return nil
}

// Exists checks whether an award exists for a (user, course) pair
func (r *XPRepository) Exists(ctx context.Context, userID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		Prefix("SELECT EXISTS(").
		From("xp_awards").
		Where(squirrel.Eq{"user_id": userID, "course_id": courseID}).
		Suffix(")").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building xp exists SQL")
		return false, fmt.Errorf("failed to build xp exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).Msg("Error scanning xp exists row")
		return false, fmt.Errorf("error checking xp award: %w", err)
	}

	return exists, nil
}

// TotalForUser sums all XP earned by a user; no rows yields 0.
func (r *XPRepository) TotalForUser(ctx context.Context, userID int64) (int64, error) {
	sql, args, err := r.sb.Select("COALESCE(SUM(xp_earned), 0)").
		From("xp_awards").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building total xp SQL")
		return 0, fmt.Errorf("failed to build total xp query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning total xp row")
		return 0, fmt.Errorf("error summing xp: %w", err)
	}

	return total, nil
}
