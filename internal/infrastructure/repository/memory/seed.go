package memory

import (
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/club"
)

const (
	ClubIDCavan    = "club-cavan-gaa"
	ClubIDMonaghan = "club-monaghan-gaa"
)

func SeedClubs() []club.Club {
	return []club.Club{
		{ID: ClubIDCavan, Name: "Cavan GAA", Slug: "cavan-gaa"},
		{ID: ClubIDMonaghan, Name: "Monaghan GAA", Slug: "monaghan-gaa"},
	}
}

// Seed loads the demo clubs into an empty store. Existing slugs are skipped.
func Seed(store *Store, now time.Time) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, c := range SeedClubs() {
		if _, exists := store.clubBySlug[c.Slug]; exists {
			continue
		}
		c.CreatedAt = now
		c.UpdatedAt = now
		store.clubs[c.ID] = c
		store.clubBySlug[c.Slug] = c.ID
		store.clubOrder = append(store.clubOrder, c.ID)
	}
}
