package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gamemaster/internal/domain/fixture"
	qb "github.com/riskibarqy/gamemaster/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListRoundsByCompetition(ctx context.Context, competitionID string) ([]fixture.Round, error) {
	query, args, err := qb.Select("id", "public_id", "competition_public_id", "round_number", "status", "pick_deadline_at").
		From("rounds").
		Where(qb.Eq("competition_public_id", competitionID)).
		OrderBy("round_number ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select rounds query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select rounds: %w", err)
	}

	out := make([]fixture.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Round{
			ID:             row.PublicID,
			CompetitionID:  row.CompetitionID,
			Number:         row.Number,
			Status:         fixture.RoundStatus(row.Status),
			PickDeadlineAt: row.PickDeadlineAt,
		})
	}
	return out, nil
}

func (r *FixtureRepository) GetFixture(ctx context.Context, fixtureID string) (fixture.Fixture, fixture.Round, bool, error) {
	query, args, err := qb.Select(
		"f.public_id AS fixture_public_id",
		"f.home_team_id",
		"f.away_team_id",
		"f.kickoff_at",
		"f.status AS fixture_status",
		"r.public_id AS round_public_id",
		"r.competition_public_id",
		"r.round_number",
		"r.status AS round_status",
		"r.pick_deadline_at",
	).
		From("fixtures f JOIN rounds r ON r.public_id = f.round_public_id").
		Where(qb.Eq("f.public_id", fixtureID)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, fixture.Round{}, false, fmt.Errorf("build get fixture query: %w", err)
	}

	var row fixtureWithRoundRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, fixture.Round{}, false, nil
		}
		return fixture.Fixture{}, fixture.Round{}, false, fmt.Errorf("get fixture: %w", err)
	}

	return fixture.Fixture{
			ID:         row.FixtureID,
			RoundID:    row.RoundID,
			HomeTeamID: row.HomeTeamID,
			AwayTeamID: row.AwayTeamID,
			KickoffAt:  row.KickoffAt,
			Status:     row.FixtureStatus,
		}, fixture.Round{
			ID:             row.RoundID,
			CompetitionID:  row.RoundCompetitionID,
			Number:         row.RoundNumber,
			Status:         fixture.RoundStatus(row.RoundStatus),
			PickDeadlineAt: row.RoundPickDeadlineAt,
		}, true, nil
}
