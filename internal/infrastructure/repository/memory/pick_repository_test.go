package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/pick"
)

func TestPickRepository_UpsertReplacesTeam(t *testing.T) {
	repo := NewPickRepository(NewStore())
	ctx := context.Background()
	first := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	stored, err := repo.Upsert(ctx, pick.Pick{ID: "p1", UserID: "u1", FixtureID: "f1", TeamPicked: "home", CreatedAt: first, UpdatedAt: first})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if stored.ID != "p1" {
		t.Fatalf("unexpected stored pick: %+v", stored)
	}

	second := first.Add(time.Hour)
	stored, err = repo.Upsert(ctx, pick.Pick{ID: "p2", UserID: "u1", FixtureID: "f1", TeamPicked: "away", CreatedAt: second, UpdatedAt: second})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if stored.ID != "p1" || stored.TeamPicked != "away" || !stored.CreatedAt.Equal(first) || !stored.UpdatedAt.Equal(second) {
		t.Fatalf("expected original row with replaced team, got %+v", stored)
	}
	if repo.store.pickCount() != 1 {
		t.Fatalf("expected one pick, got %d", repo.store.pickCount())
	}
}
