package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	"github.com/riskibarqy/gamemaster/internal/infrastructure/repository/memory"
)

// SeedClubs inserts the demo clubs, leaving existing slugs untouched. It
// returns the number of clubs inserted.
func SeedClubs(ctx context.Context, db *sqlx.DB, newID func() (string, error)) (int, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	inserted := 0
	for _, c := range memory.SeedClubs() {
		publicID, err := newID()
		if err != nil {
			return 0, fmt.Errorf("generate seed club id: %w", err)
		}
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO clubs (public_id, name, slug)
VALUES (:public_id, :name, :slug)
ON CONFLICT (slug) DO NOTHING`, map[string]any{
			"public_id": publicID,
			"name":      c.Name,
			"slug":      c.Slug,
		})
		if err != nil {
			return 0, fmt.Errorf("bind seed club %s query: %w", c.Slug, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		result, err := tx.ExecContext(ctx, sqlQuery, args...)
		if err != nil {
			return 0, fmt.Errorf("seed club %s: %w", c.Slug, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected seed club %s: %w", c.Slug, err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed tx: %w", err)
	}
	return inserted, nil
}

// SeedSiteAdmin creates the site admin or promotes an existing user with the
// same email, replacing its password hash.
func SeedSiteAdmin(ctx context.Context, db *sqlx.DB, publicID, email, name, passwordHash string) error {
	now := time.Now().UTC()
	sqlQuery, args, err := sqlx.Named(`
INSERT INTO users (public_id, email, name, password_hash, role, created_at, updated_at)
VALUES (:public_id, :email, :name, :password_hash, :role, :now, :now)
ON CONFLICT (email) DO UPDATE
SET role = EXCLUDED.role,
    password_hash = EXCLUDED.password_hash,
    name = COALESCE(NULLIF(EXCLUDED.name, ''), users.name),
    updated_at = EXCLUDED.updated_at`, map[string]any{
		"public_id":     publicID,
		"email":         user.NormalizeEmail(email),
		"name":          name,
		"password_hash": passwordHash,
		"role":          string(user.RoleSiteAdmin),
		"now":           now,
	})
	if err != nil {
		return fmt.Errorf("bind seed site admin query: %w", err)
	}
	if _, err := db.ExecContext(ctx, db.Rebind(sqlQuery), args...); err != nil {
		return fmt.Errorf("seed site admin: %w", err)
	}
	return nil
}
