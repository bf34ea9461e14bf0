package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gamemaster/internal/domain/template"
	qb "github.com/riskibarqy/gamemaster/internal/platform/querybuilder"
)

type TemplateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) Create(ctx context.Context, t template.Template) error {
	query, args, err := qb.InsertModel("game_templates", templateInsertModel{
		PublicID:          t.ID,
		Name:              t.Name,
		GameType:          t.GameType,
		Sport:             t.Sport,
		Status:            string(t.Status),
		ActivationOpenAt:  t.ActivationOpenAt,
		ActivationCloseAt: t.ActivationCloseAt,
		JoinOpenAt:        t.JoinOpenAt,
		JoinCloseAt:       t.JoinCloseAt,
		StartAt:           t.StartAt,
		RulesJSON:         nullableJSON(t.RulesJSON),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create template query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, templateID string) (template.Template, bool, error) {
	query, args, err := qb.Select("*").From("game_templates").
		Where(qb.Eq("public_id", templateID)).
		ToSQL()
	if err != nil {
		return template.Template{}, false, fmt.Errorf("build get template query: %w", err)
	}

	var row templateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return template.Template{}, false, nil
		}
		return template.Template{}, false, fmt.Errorf("get template: %w", err)
	}
	return mapTemplate(row), true, nil
}

func (r *TemplateRepository) List(ctx context.Context, filter template.Filter) ([]template.Template, error) {
	builder := qb.Select("*").From("game_templates")
	if filter.Status != "" {
		builder.Where(qb.Eq("status", string(filter.Status)))
	}
	if filter.StartsFrom != nil {
		builder.Where(qb.Gte("start_at", *filter.StartsFrom))
	}
	query, args, err := builder.OrderBy("start_at ASC", "id ASC").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select templates query: %w", err)
	}

	var rows []templateTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select templates: %w", err)
	}

	out := make([]template.Template, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTemplate(row))
	}
	return out, nil
}

func mapTemplate(row templateTableModel) template.Template {
	return template.Template{
		ID:                row.PublicID,
		Name:              row.Name,
		GameType:          row.GameType,
		Sport:             row.Sport,
		Status:            template.Status(row.Status),
		ActivationOpenAt:  row.ActivationOpenAt,
		ActivationCloseAt: row.ActivationCloseAt,
		JoinOpenAt:        row.JoinOpenAt,
		JoinCloseAt:       row.JoinCloseAt,
		StartAt:           row.StartAt,
		RulesJSON:         row.RulesJSON,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
