package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/gamemaster/internal/platform/cache"
)

func TestClubRepository_CreateInvalidatesNegativeSlugLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewClubRepository(memory.NewClubRepository(memory.NewStore()), basecache.NewStore(time.Minute))

	if _, exists, err := repo.GetBySlug(ctx, "cavan-gaa"); err != nil || exists {
		t.Fatalf("expected miss before create, exists=%v err=%v", exists, err)
	}

	if err := repo.Create(ctx, club.Club{ID: "c1", Name: "Cavan GAA", Slug: "cavan-gaa"}); err != nil {
		t.Fatalf("create club: %v", err)
	}

	got, exists, err := repo.GetBySlug(ctx, "cavan-gaa")
	if err != nil || !exists || got.ID != "c1" {
		t.Fatalf("expected created club after invalidation, got %+v exists=%v err=%v", got, exists, err)
	}

	items, err := repo.List(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("unexpected list: %+v err=%v", items, err)
	}
}

func TestClubRepository_MembershipNotCached(t *testing.T) {
	ctx := context.Background()
	repo := NewClubRepository(memory.NewClubRepository(memory.NewStore()), basecache.NewStore(time.Minute))

	if _, exists, _ := repo.GetMember(ctx, "c1", "u1"); exists {
		t.Fatalf("unexpected membership")
	}
	if err := repo.UpsertMember(ctx, club.Member{ClubID: "c1", UserID: "u1", Role: club.MemberRoleClubAdmin}); err != nil {
		t.Fatalf("upsert member: %v", err)
	}
	member, exists, err := repo.GetMember(ctx, "c1", "u1")
	if err != nil || !exists || !member.IsAdmin() {
		t.Fatalf("expected fresh admin membership, got %+v exists=%v err=%v", member, exists, err)
	}
}
