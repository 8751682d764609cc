// Package seed inserts the baseline rows the application expects.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/askelund/learnly/internal/app/models"
)

// CreateDefaultData ensures the role table holds the fixed role set.
// Registration depends on the student role existing.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	roles := []models.Role{
		{ID: models.RoleStudent, Name: "student"},
		{ID: models.RoleAdmin, Name: "admin"},
	}

	for _, role := range roles {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO roles (id, name)
			VALUES ($1, $2)
			ON CONFLICT (id) DO NOTHING`,
			role.ID, role.Name)
		if err != nil {
			return fmt.Errorf("failed to seed role %q: %w", role.Name, err)
		}
	}

	lgr.Info().Msg("Default roles present")
	return nil
}
