package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gamemaster/internal/domain/audit"
	qb "github.com/riskibarqy/gamemaster/internal/platform/querybuilder"
)

type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, e audit.Event) error {
	query, args, err := qb.InsertModel("audit_events", auditInsertModel{
		PublicID:      e.ID,
		Action:        e.Action,
		Outcome:       string(e.Outcome),
		ActorUserID:   nullableString(e.ActorUserID),
		ClubID:        nullableString(e.ClubID),
		CompetitionID: nullableString(e.CompetitionID),
		TemplateID:    nullableString(e.TemplateID),
		Reason:        nullableString(e.Reason),
		OccurredAt:    e.OccurredAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build append audit event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
