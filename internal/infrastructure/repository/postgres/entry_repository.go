package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/domain/competition"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	qb "github.com/riskibarqy/gamemaster/internal/platform/querybuilder"
)

const entryUniqueConstraint = "competition_entries_competition_user_key"

type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Join runs the user upsert, membership insert and entry insert in one
// transaction. The entry unique constraint settles concurrent joins.
func (r *EntryRepository) Join(ctx context.Context, params competition.JoinParams) (competition.JoinResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return competition.JoinResult{}, fmt.Errorf("begin tx join competition: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	userQuery, userArgs, err := qb.InsertModel("users", userInsertModel{
		PublicID:  params.NewUserID,
		Email:     user.NormalizeEmail(params.Email),
		Name:      params.Name,
		Role:      string(user.RolePlayer),
		CreatedAt: params.Now,
		UpdatedAt: params.Now,
	}, `ON CONFLICT (email) DO UPDATE
SET name = COALESCE(NULLIF(EXCLUDED.name, ''), users.name),
    updated_at = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.updated_at ELSE users.updated_at END
RETURNING *, (xmax = 0) AS inserted`)
	if err != nil {
		return competition.JoinResult{}, fmt.Errorf("build upsert join user query: %w", err)
	}
	var userRow userUpsertRow
	if err := tx.GetContext(ctx, &userRow, userQuery, userArgs...); err != nil {
		return competition.JoinResult{}, fmt.Errorf("upsert join user: %w", err)
	}

	memberQuery, memberArgs, err := qb.InsertModel("club_members", clubMemberTableModel{
		ClubID:    params.ClubID,
		UserID:    userRow.PublicID,
		Role:      string(club.MemberRolePlayer),
		CreatedAt: params.Now,
	}, "ON CONFLICT (club_public_id, user_public_id) DO NOTHING")
	if err != nil {
		return competition.JoinResult{}, fmt.Errorf("build insert join membership query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, memberQuery, memberArgs...); err != nil {
		return competition.JoinResult{}, fmt.Errorf("insert join membership: %w", err)
	}

	entryQuery, entryArgs, err := qb.InsertModel("competition_entries", entryInsertModel{
		PublicID:      params.EntryID,
		CompetitionID: params.CompetitionID,
		UserID:        userRow.PublicID,
		Status:        string(competition.EntryStatusActive),
		CreatedAt:     params.Now,
	}, "RETURNING *")
	if err != nil {
		return competition.JoinResult{}, fmt.Errorf("build insert entry query: %w", err)
	}
	var entryRow entryTableModel
	if err := tx.GetContext(ctx, &entryRow, entryQuery, entryArgs...); err != nil {
		if isUniqueViolation(err, entryUniqueConstraint) {
			return competition.JoinResult{}, competition.ErrDuplicateEntry
		}
		return competition.JoinResult{}, fmt.Errorf("insert entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return competition.JoinResult{}, fmt.Errorf("commit join competition: %w", err)
	}

	return competition.JoinResult{
		Entry: competition.Entry{
			ID:            entryRow.PublicID,
			CompetitionID: entryRow.CompetitionID,
			UserID:        entryRow.UserID,
			Status:        competition.EntryStatus(entryRow.Status),
			CreatedAt:     entryRow.CreatedAt,
		},
		User:        mapUser(userRow.userTableModel),
		UserCreated: userRow.Inserted,
	}, nil
}
