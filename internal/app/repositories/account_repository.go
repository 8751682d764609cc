package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/askelund/learnly/internal/app/models"
	"github.com/askelund/learnly/internal/pkg/apperrors"
	"github.com/askelund/learnly/internal/pkg/dberrors"
)

// AccountRepository handles account database operations
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account and returns its id. The unique constraint on
// email is the source of truth for duplicates; a concurrent insert for the
// same email surfaces here as ErrEmailAlreadyExists, never as a raw pg error.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO accounts (full_name, email, password_hash, role_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		account.FullName, account.Email, account.PasswordHash, account.RoleID).Scan(&id)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating account: %w", err)
	}

	return id, nil
}

// GetByEmail retrieves an account by exact email match
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	account := &models.Account{}
	err := r.db.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash, role_id, created_at
		FROM accounts
		WHERE email = $1`,
		email).Scan(
		&account.ID, &account.FullName, &account.Email,
		&account.PasswordHash, &account.RoleID, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return account, nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	account := &models.Account{}
	err := r.db.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash, role_id, created_at
		FROM accounts
		WHERE id = $1`,
		id).Scan(
		&account.ID, &account.FullName, &account.Email,
		&account.PasswordHash, &account.RoleID, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return account, nil
}

// EmailExists checks if an email is already registered
func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}
