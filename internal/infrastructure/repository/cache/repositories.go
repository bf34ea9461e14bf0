package cache

import (
	"context"

	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/domain/template"
	basecache "github.com/riskibarqy/gamemaster/internal/platform/cache"
)

const (
	clubPrefix     = "club"
	templatePrefix = "template"
)

// ClubRepository caches club reads. Memberships are never cached since they
// drive authorization.
type ClubRepository struct {
	next  club.Repository
	cache *basecache.Store
}

func NewClubRepository(next club.Repository, cache *basecache.Store) *ClubRepository {
	return &ClubRepository{next: next, cache: cache}
}

func (r *ClubRepository) Create(ctx context.Context, c club.Club) error {
	if err := r.next.Create(ctx, c); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, clubPrefix+":")
	return nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	return r.getOne(ctx, basecache.Key(clubPrefix, "id", clubID), func(ctx context.Context) (club.Club, bool, error) {
		return r.next.GetByID(ctx, clubID)
	})
}

func (r *ClubRepository) GetBySlug(ctx context.Context, slug string) (club.Club, bool, error) {
	return r.getOne(ctx, basecache.Key(clubPrefix, "slug", slug), func(ctx context.Context) (club.Club, bool, error) {
		return r.next.GetBySlug(ctx, slug)
	})
}

func (r *ClubRepository) getOne(ctx context.Context, key string, load func(context.Context) (club.Club, bool, error)) (club.Club, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return cachedClub{value: item, exists: exists}, nil
	})
	if err != nil {
		return club.Club{}, false, err
	}

	cached, _ := v.(cachedClub)
	return cached.value, cached.exists, nil
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key(clubPrefix, "list"), func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]club.Club(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]club.Club)
	return append([]club.Club(nil), items...), nil
}

func (r *ClubRepository) Count(ctx context.Context) (int, error) {
	return r.next.Count(ctx)
}

func (r *ClubRepository) GetMember(ctx context.Context, clubID, userID string) (club.Member, bool, error) {
	return r.next.GetMember(ctx, clubID, userID)
}

func (r *ClubRepository) UpsertMember(ctx context.Context, m club.Member) error {
	return r.next.UpsertMember(ctx, m)
}

func (r *ClubRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]club.Membership, error) {
	return r.next.ListMembershipsByUser(ctx, userID)
}

type cachedClub struct {
	value  club.Club
	exists bool
}

// TemplateRepository caches single template reads. Lists depend on the clock
// and go straight to the store.
type TemplateRepository struct {
	next  template.Repository
	cache *basecache.Store
}

func NewTemplateRepository(next template.Repository, cache *basecache.Store) *TemplateRepository {
	return &TemplateRepository{next: next, cache: cache}
}

func (r *TemplateRepository) Create(ctx context.Context, t template.Template) error {
	if err := r.next.Create(ctx, t); err != nil {
		return err
	}
	r.cache.Delete(ctx, basecache.Key(templatePrefix, "id", t.ID))
	return nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, templateID string) (template.Template, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, basecache.Key(templatePrefix, "id", templateID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, templateID)
		if err != nil {
			return nil, err
		}
		return cachedTemplate{value: item, exists: exists}, nil
	})
	if err != nil {
		return template.Template{}, false, err
	}

	cached, _ := v.(cachedTemplate)
	return cached.value, cached.exists, nil
}

func (r *TemplateRepository) List(ctx context.Context, filter template.Filter) ([]template.Template, error) {
	return r.next.List(ctx, filter)
}

type cachedTemplate struct {
	value  template.Template
	exists bool
}
