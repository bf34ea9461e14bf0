package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/gamemaster/internal/domain/club"
)

type ClubRepository struct {
	store *Store
}

func NewClubRepository(store *Store) *ClubRepository {
	return &ClubRepository{store: store}
}

func (r *ClubRepository) Create(_ context.Context, c club.Club) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.clubBySlug[c.Slug]; exists {
		return club.ErrDuplicateSlug
	}
	c.BrandingJSON = cloneBytes(c.BrandingJSON)
	r.store.clubs[c.ID] = c
	r.store.clubBySlug[c.Slug] = c.ID
	r.store.clubOrder = append(r.store.clubOrder, c.ID)
	return nil
}

func (r *ClubRepository) GetByID(_ context.Context, clubID string) (club.Club, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.clubs[clubID]
	return c, ok, nil
}

func (r *ClubRepository) GetBySlug(_ context.Context, slug string) (club.Club, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.clubBySlug[slug]
	if !ok {
		return club.Club{}, false, nil
	}
	return r.store.clubs[id], true, nil
}

// List returns clubs newest first.
func (r *ClubRepository) List(_ context.Context) ([]club.Club, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]club.Club, 0, len(r.store.clubOrder))
	for i := len(r.store.clubOrder) - 1; i >= 0; i-- {
		out = append(out, r.store.clubs[r.store.clubOrder[i]])
	}
	return out, nil
}

func (r *ClubRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.clubs), nil
}

func (r *ClubRepository) GetMember(_ context.Context, clubID, userID string) (club.Member, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.members[clubID][userID]
	return m, ok, nil
}

func (r *ClubRepository) UpsertMember(_ context.Context, m club.Member) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	byUser, ok := r.store.members[m.ClubID]
	if !ok {
		byUser = make(map[string]club.Member)
		r.store.members[m.ClubID] = byUser
	}
	if existing, ok := byUser[m.UserID]; ok {
		existing.Role = m.Role
		byUser[m.UserID] = existing
		return nil
	}
	byUser[m.UserID] = m
	return nil
}

func (r *ClubRepository) ListMembershipsByUser(_ context.Context, userID string) ([]club.Membership, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]club.Membership, 0)
	for _, clubID := range r.store.clubOrder {
		m, ok := r.store.members[clubID][userID]
		if !ok {
			continue
		}
		out = append(out, club.Membership{Club: r.store.clubs[clubID], Role: m.Role})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Club.Name < out[j].Club.Name })
	return out, nil
}
