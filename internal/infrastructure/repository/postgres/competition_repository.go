package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gamemaster/internal/domain/competition"
	qb "github.com/riskibarqy/gamemaster/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) Create(ctx context.Context, c competition.Competition) error {
	query, args, err := qb.InsertModel("competitions", competitionInsertModel{
		PublicID:      c.ID,
		ClubID:        c.ClubID,
		TemplateID:    nullableString(c.TemplateID),
		Name:          c.Name,
		Sport:         c.Sport,
		Status:        string(c.Status),
		EntryFeeCents: c.EntryFeeCents,
		Currency:      c.Currency,
		RulesJSON:     nullableJSON(c.RulesJSON),
		StartRoundAt:  c.StartRoundAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create competition query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create competition: %w", err)
	}
	return nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(qb.Eq("public_id", competitionID)).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition: %w", err)
	}
	return mapCompetition(row), true, nil
}

func (r *CompetitionRepository) List(ctx context.Context, filter competition.Filter) ([]competition.Competition, error) {
	builder := qb.Select("*").From("competitions")
	if filter.ClubID != "" {
		builder.Where(qb.Eq("club_public_id", filter.ClubID))
	}
	if filter.Status != "" {
		builder.Where(qb.Eq("status", string(filter.Status)))
	}
	query, args, err := builder.OrderBy("created_at DESC", "id DESC").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapCompetition(row))
	}
	return out, nil
}

// TransitionStatus is a single conditional UPDATE; concurrent callers race on
// the row lock and only the first sees a changed row.
func (r *CompetitionRepository) TransitionStatus(ctx context.Context, competitionID string, from, to competition.Status) (bool, error) {
	query, args, err := qb.Update("competitions").
		Set("status", string(to)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", competitionID),
			qb.Eq("status", string(from)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build transition competition status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("transition competition status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected transition competition status: %w", err)
	}
	return affected > 0, nil
}

func mapCompetition(row competitionTableModel) competition.Competition {
	return competition.Competition{
		ID:            row.PublicID,
		ClubID:        row.ClubID,
		TemplateID:    stringValue(row.TemplateID),
		Name:          row.Name,
		Sport:         row.Sport,
		Status:        competition.Status(row.Status),
		EntryFeeCents: row.EntryFeeCents,
		Currency:      row.Currency,
		RulesJSON:     row.RulesJSON,
		StartRoundAt:  row.StartRoundAt,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
