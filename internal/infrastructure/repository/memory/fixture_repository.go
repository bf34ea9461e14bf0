package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/gamemaster/internal/domain/fixture"
)

type FixtureRepository struct {
	store *Store
}

func NewFixtureRepository(store *Store) *FixtureRepository {
	return &FixtureRepository{store: store}
}

func (r *FixtureRepository) ListRoundsByCompetition(_ context.Context, competitionID string) ([]fixture.Round, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]fixture.Round, 0)
	for _, round := range r.store.rounds {
		if round.CompetitionID == competitionID {
			out = append(out, round)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *FixtureRepository) GetFixture(_ context.Context, fixtureID string) (fixture.Fixture, fixture.Round, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f, ok := r.store.fixtures[fixtureID]
	if !ok {
		return fixture.Fixture{}, fixture.Round{}, false, nil
	}
	round, ok := r.store.rounds[f.RoundID]
	if !ok {
		return fixture.Fixture{}, fixture.Round{}, false, nil
	}
	return f, round, true, nil
}
