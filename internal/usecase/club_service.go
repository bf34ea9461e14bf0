package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/audit"
	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	idgen "github.com/riskibarqy/gamemaster/internal/platform/id"
)

type CreateClubInput struct {
	Name         string
	Slug         string
	BrandingJSON []byte
}

// AssignClubAdminInput identifies the user by id or, when UserID is empty,
// by email.
type AssignClubAdminInput struct {
	ClubID string
	UserID string
	Email  string
}

type ClubService struct {
	clubRepo club.Repository
	userRepo user.Repository
	policy   *AccessPolicy
	audit    auditSink
	idGen    idgen.Generator
	now      func() time.Time
}

func NewClubService(
	clubRepo club.Repository,
	userRepo user.Repository,
	policy *AccessPolicy,
	audit auditSink,
	idGen idgen.Generator,
) *ClubService {
	return &ClubService{
		clubRepo: clubRepo,
		userRepo: userRepo,
		policy:   policy,
		audit:    audit,
		idGen:    idGen,
		now:      time.Now,
	}
}

func (s *ClubService) Create(ctx context.Context, principal user.Principal, input CreateClubInput) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.Create")
	defer span.End()

	if err := s.policy.RequireSiteAdmin(ctx, principal, Target{}); err != nil {
		return club.Club{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := requireMinLength("name", input.Name, 2); err != nil {
		return club.Club{}, err
	}
	slug := club.NormalizeSlug(input.Slug, input.Name)
	if !club.ValidSlug(slug) {
		return club.Club{}, invalidField("slug", "may only contain letters, digits and dashes")
	}
	branding, err := normalizeJSONBlob("brandingJson", input.BrandingJSON)
	if err != nil {
		return club.Club{}, err
	}

	clubID, err := s.idGen.NewID()
	if err != nil {
		return club.Club{}, fmt.Errorf("generate club id: %w", err)
	}

	now := s.now().UTC()
	item := club.Club{
		ID:           clubID,
		Name:         input.Name,
		Slug:         slug,
		BrandingJSON: branding,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.clubRepo.Create(ctx, item); err != nil {
		if errors.Is(err, club.ErrDuplicateSlug) {
			return club.Club{}, ErrSlugTaken
		}
		return club.Club{}, fmt.Errorf("create club: %w", err)
	}

	return item, nil
}

func (s *ClubService) List(ctx context.Context) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.List")
	defer span.End()

	items, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	return items, nil
}

func (s *ClubService) GetBySlug(ctx context.Context, slug string) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.GetBySlug")
	defer span.End()

	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return club.Club{}, ErrClubNotFound
	}

	item, exists, err := s.clubRepo.GetBySlug(ctx, slug)
	if err != nil {
		return club.Club{}, fmt.Errorf("get club by slug: %w", err)
	}
	if !exists {
		return club.Club{}, ErrClubNotFound
	}
	return item, nil
}

// Count is a cheap store round-trip used by the readiness probe.
func (s *ClubService) Count(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.Count")
	defer span.End()

	count, err := s.clubRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count clubs: %w", err)
	}
	return count, nil
}

func (s *ClubService) AssignClubAdmin(ctx context.Context, principal user.Principal, input AssignClubAdminInput) (club.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.AssignClubAdmin")
	defer span.End()

	input.ClubID = strings.TrimSpace(input.ClubID)
	input.UserID = strings.TrimSpace(input.UserID)
	input.Email = user.NormalizeEmail(input.Email)

	target := Target{ClubID: input.ClubID}
	if err := s.policy.RequireSiteAdmin(ctx, principal, target); err != nil {
		return club.Member{}, err
	}
	if input.UserID == "" && input.Email == "" {
		return club.Member{}, invalidField("userId", "userId or email is required")
	}

	if _, exists, err := s.clubRepo.GetByID(ctx, input.ClubID); err != nil {
		return club.Member{}, fmt.Errorf("get club: %w", err)
	} else if !exists {
		return club.Member{}, ErrClubNotFound
	}

	var (
		assignee user.User
		exists   bool
		err      error
	)
	if input.UserID != "" {
		assignee, exists, err = s.userRepo.GetByID(ctx, input.UserID)
	} else {
		assignee, exists, err = s.userRepo.GetByEmail(ctx, input.Email)
	}
	if err != nil {
		return club.Member{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return club.Member{}, ErrUserNotFound
	}
	// A passwordless account can be claimed by anyone who knows the email.
	if !assignee.HasPassword() {
		return club.Member{}, ErrUserNotRegistered
	}

	member := club.Member{
		ClubID:    input.ClubID,
		UserID:    assignee.ID,
		Role:      club.MemberRoleClubAdmin,
		CreatedAt: s.now().UTC(),
	}
	if err := s.clubRepo.UpsertMember(ctx, member); err != nil {
		return club.Member{}, fmt.Errorf("upsert club admin membership: %w", err)
	}

	if s.audit != nil {
		s.audit.Record(ctx, audit.Event{
			Action:      audit.ActionClubAdminAssign,
			Outcome:     audit.OutcomeSuccess,
			ActorUserID: principal.UserID,
			ClubID:      input.ClubID,
			Reason:      "assigned user " + assignee.ID,
		})
	}

	return member, nil
}

func (s *ClubService) ListMemberships(ctx context.Context, userID string) ([]club.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.ListMemberships")
	defer span.End()

	items, err := s.clubRepo.ListMembershipsByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, fmt.Errorf("list memberships by user: %w", err)
	}
	return items, nil
}
