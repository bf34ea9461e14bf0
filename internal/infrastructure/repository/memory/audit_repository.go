package memory

import (
	"context"

	"github.com/riskibarqy/gamemaster/internal/domain/audit"
)

type AuditRepository struct {
	store *Store
}

func NewAuditRepository(store *Store) *AuditRepository {
	return &AuditRepository{store: store}
}

func (r *AuditRepository) Append(_ context.Context, e audit.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.auditEvents = append(r.store.auditEvents, e)
	return nil
}
