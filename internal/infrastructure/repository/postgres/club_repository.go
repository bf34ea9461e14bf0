package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gamemaster/internal/domain/club"
	qb "github.com/riskibarqy/gamemaster/internal/platform/querybuilder"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) Create(ctx context.Context, c club.Club) error {
	query, args, err := qb.InsertModel("clubs", clubInsertModel{
		PublicID:     c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		BrandingJSON: nullableJSON(c.BrandingJSON),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create club query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "clubs_slug_key") {
			return club.ErrDuplicateSlug
		}
		return fmt.Errorf("create club: %w", err)
	}
	return nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	return r.getOne(ctx, "id", qb.Eq("public_id", clubID))
}

func (r *ClubRepository) GetBySlug(ctx context.Context, slug string) (club.Club, bool, error) {
	return r.getOne(ctx, "slug", qb.Eq("slug", slug))
}

func (r *ClubRepository) getOne(ctx context.Context, by string, cond qb.Condition) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").Where(cond).ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club by %s query: %w", by, err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club by %s: %w", by, err)
	}
	return mapClub(row), true, nil
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select("*").From("clubs").
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapClub(row))
	}
	return out, nil
}

func (r *ClubRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("clubs").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count clubs query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count clubs: %w", err)
	}
	return count, nil
}

func (r *ClubRepository) GetMember(ctx context.Context, clubID, userID string) (club.Member, bool, error) {
	query, args, err := qb.Select("club_public_id", "user_public_id", "role", "created_at").
		From("club_members").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("user_public_id", userID),
		).
		ToSQL()
	if err != nil {
		return club.Member{}, false, fmt.Errorf("build get club member query: %w", err)
	}

	var row clubMemberTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Member{}, false, nil
		}
		return club.Member{}, false, fmt.Errorf("get club member: %w", err)
	}

	return club.Member{
		ClubID:    row.ClubID,
		UserID:    row.UserID,
		Role:      club.MemberRole(row.Role),
		CreatedAt: row.CreatedAt,
	}, true, nil
}

func (r *ClubRepository) UpsertMember(ctx context.Context, m club.Member) error {
	query, args, err := qb.InsertModel("club_members", clubMemberTableModel{
		ClubID:    m.ClubID,
		UserID:    m.UserID,
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt,
	}, `ON CONFLICT (club_public_id, user_public_id)
DO UPDATE SET role = EXCLUDED.role`)
	if err != nil {
		return fmt.Errorf("build upsert club member query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert club member: %w", err)
	}
	return nil
}

func (r *ClubRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]club.Membership, error) {
	query, args, err := qb.Select("c.*", "m.role AS member_role").
		From("club_members m JOIN clubs c ON c.public_id = m.club_public_id").
		Where(qb.Eq("m.user_public_id", userID)).
		OrderBy("c.name", "c.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select memberships query: %w", err)
	}

	var rows []membershipRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select memberships: %w", err)
	}

	out := make([]club.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, club.Membership{
			Club: mapClub(row.clubTableModel),
			Role: club.MemberRole(row.MemberRole),
		})
	}
	return out, nil
}

func mapClub(row clubTableModel) club.Club {
	return club.Club{
		ID:           row.PublicID,
		Name:         row.Name,
		Slug:         row.Slug,
		BrandingJSON: row.BrandingJSON,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
