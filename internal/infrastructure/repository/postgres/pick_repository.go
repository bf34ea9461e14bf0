package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gamemaster/internal/domain/pick"
	qb "github.com/riskibarqy/gamemaster/internal/platform/querybuilder"
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) Upsert(ctx context.Context, p pick.Pick) (pick.Pick, error) {
	query, args, err := qb.InsertModel("picks", pickInsertModel{
		PublicID:      p.ID,
		UserID:        p.UserID,
		CompetitionID: p.CompetitionID,
		FixtureID:     p.FixtureID,
		TeamPicked:    p.TeamPicked,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, `ON CONFLICT (user_public_id, fixture_public_id)
DO UPDATE SET team_picked = EXCLUDED.team_picked,
    competition_public_id = EXCLUDED.competition_public_id,
    updated_at = EXCLUDED.updated_at
RETURNING *`)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("build upsert pick query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return pick.Pick{}, fmt.Errorf("upsert pick: %w", err)
	}

	return pick.Pick{
		ID:            row.PublicID,
		UserID:        row.UserID,
		CompetitionID: row.CompetitionID,
		FixtureID:     row.FixtureID,
		TeamPicked:    row.TeamPicked,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}
