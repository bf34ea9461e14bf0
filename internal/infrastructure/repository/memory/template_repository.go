package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/gamemaster/internal/domain/template"
)

type TemplateRepository struct {
	store *Store
}

func NewTemplateRepository(store *Store) *TemplateRepository {
	return &TemplateRepository{store: store}
}

func (r *TemplateRepository) Create(_ context.Context, t template.Template) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t.RulesJSON = cloneBytes(t.RulesJSON)
	r.store.templates[t.ID] = t
	r.store.templateOrder = append(r.store.templateOrder, t.ID)
	return nil
}

func (r *TemplateRepository) GetByID(_ context.Context, templateID string) (template.Template, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.templates[templateID]
	return t, ok, nil
}

// List returns matching templates ordered by start time.
func (r *TemplateRepository) List(_ context.Context, filter template.Filter) ([]template.Template, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]template.Template, 0)
	for _, id := range r.store.templateOrder {
		t := r.store.templates[id]
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.StartsFrom != nil && t.StartAt.Before(*filter.StartsFrom) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}
