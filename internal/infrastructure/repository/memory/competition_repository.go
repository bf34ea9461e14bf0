package memory

import (
	"context"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/domain/competition"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
)

type CompetitionRepository struct {
	store *Store
}

func NewCompetitionRepository(store *Store) *CompetitionRepository {
	return &CompetitionRepository{store: store}
}

func (r *CompetitionRepository) Create(_ context.Context, c competition.Competition) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c.RulesJSON = cloneBytes(c.RulesJSON)
	r.store.competitions[c.ID] = c
	r.store.competitionOrder = append(r.store.competitionOrder, c.ID)
	return nil
}

func (r *CompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.competitions[competitionID]
	return c, ok, nil
}

// List returns matching competitions newest first.
func (r *CompetitionRepository) List(_ context.Context, filter competition.Filter) ([]competition.Competition, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]competition.Competition, 0)
	for i := len(r.store.competitionOrder) - 1; i >= 0; i-- {
		c := r.store.competitions[r.store.competitionOrder[i]]
		if filter.ClubID != "" && c.ClubID != filter.ClubID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CompetitionRepository) TransitionStatus(_ context.Context, competitionID string, from, to competition.Status) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.competitions[competitionID]
	if !ok || c.Status != from {
		return false, nil
	}
	c.Status = to
	c.UpdatedAt = time.Now().UTC()
	r.store.competitions[competitionID] = c
	return true, nil
}

type EntryRepository struct {
	store *Store
}

func NewEntryRepository(store *Store) *EntryRepository {
	return &EntryRepository{store: store}
}

// Join applies the user upsert, membership and entry insert under the store
// lock; nothing is written when the entry already exists.
func (r *EntryRepository) Join(_ context.Context, params competition.JoinParams) (competition.JoinResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	email := user.NormalizeEmail(params.Email)
	player, created := r.lockedUser(email, params)

	if _, exists := r.store.entries[params.CompetitionID][player.ID]; exists {
		return competition.JoinResult{}, competition.ErrDuplicateEntry
	}

	if created {
		r.store.users[player.ID] = player
		r.store.userByEmail[email] = player.ID
	} else if params.Name != "" && player.Name != params.Name {
		player.Name = params.Name
		player.UpdatedAt = params.Now
		r.store.users[player.ID] = player
	}

	byUser, ok := r.store.members[params.ClubID]
	if !ok {
		byUser = make(map[string]club.Member)
		r.store.members[params.ClubID] = byUser
	}
	if _, ok := byUser[player.ID]; !ok {
		byUser[player.ID] = club.Member{
			ClubID:    params.ClubID,
			UserID:    player.ID,
			Role:      club.MemberRolePlayer,
			CreatedAt: params.Now,
		}
	}

	entry := competition.Entry{
		ID:            params.EntryID,
		CompetitionID: params.CompetitionID,
		UserID:        player.ID,
		Status:        competition.EntryStatusActive,
		CreatedAt:     params.Now,
	}
	entries, ok := r.store.entries[params.CompetitionID]
	if !ok {
		entries = make(map[string]competition.Entry)
		r.store.entries[params.CompetitionID] = entries
	}
	entries[player.ID] = entry

	return competition.JoinResult{Entry: entry, User: player, UserCreated: created}, nil
}

// lockedUser must be called with the store lock held.
func (r *EntryRepository) lockedUser(email string, params competition.JoinParams) (user.User, bool) {
	if id, ok := r.store.userByEmail[email]; ok {
		return r.store.users[id], false
	}
	return user.User{
		ID:        params.NewUserID,
		Email:     email,
		Name:      params.Name,
		Role:      user.RolePlayer,
		CreatedAt: params.Now,
		UpdatedAt: params.Now,
	}, true
}
