package memory

import (
	"context"

	"github.com/riskibarqy/gamemaster/internal/domain/pick"
)

type PickRepository struct {
	store *Store
}

func NewPickRepository(store *Store) *PickRepository {
	return &PickRepository{store: store}
}

func (r *PickRepository) Upsert(_ context.Context, p pick.Pick) (pick.Pick, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := pickKey{userID: p.UserID, fixtureID: p.FixtureID}
	if existing, ok := r.store.picks[key]; ok {
		existing.TeamPicked = p.TeamPicked
		existing.UpdatedAt = p.UpdatedAt
		r.store.picks[key] = existing
		return existing, nil
	}
	r.store.picks[key] = p
	return p, nil
}
