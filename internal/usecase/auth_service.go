package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	idgen "github.com/riskibarqy/gamemaster/internal/platform/id"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	IssueAccessToken(ctx context.Context, u user.User) (token string, expiresAt time.Time, err error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      user.User
}

// Profile is the caller's account plus the clubs they belong to.
type Profile struct {
	User        user.User
	Memberships []club.Membership
}

type AuthService struct {
	userRepo user.Repository
	clubRepo club.Repository
	issuer   TokenIssuer
	hasher   PasswordHasher
	idGen    idgen.Generator
	now      func() time.Time
}

func NewAuthService(userRepo user.Repository, clubRepo club.Repository, issuer TokenIssuer, hasher PasswordHasher, idGen idgen.Generator) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		clubRepo: clubRepo,
		issuer:   issuer,
		hasher:   hasher,
		idGen:    idGen,
		now:      time.Now,
	}
}

// Register creates a PLAYER account. A passwordless user created by joining a
// competition with the same email is claimed instead of duplicated; only one
// concurrent claim wins, the rest see ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	input.Email = user.NormalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if input.Email == "" {
		return Session{}, invalidField("email", "is required")
	}
	if len(input.Password) < minPasswordLength {
		return Session{}, invalidField("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if len(input.Password) > maxPasswordBytes {
		return Session{}, invalidField("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	existing, exists, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return Session{}, fmt.Errorf("get user by email: %w", err)
	}

	var account user.User
	switch {
	case exists && existing.HasPassword():
		return Session{}, ErrEmailTaken
	case exists:
		claimable, err := s.claimable(ctx, existing)
		if err != nil {
			return Session{}, err
		}
		if !claimable {
			return Session{}, ErrEmailTaken
		}
		name := input.Name
		if name == "" {
			name = existing.Name
		}
		claimed, err := s.userRepo.ClaimCredentials(ctx, existing.ID, hash, name)
		if err != nil {
			return Session{}, fmt.Errorf("claim user: %w", err)
		}
		if !claimed {
			return Session{}, ErrEmailTaken
		}
		account = existing
		account.PasswordHash = hash
		account.Name = name
	default:
		userID, err := s.idGen.NewID()
		if err != nil {
			return Session{}, fmt.Errorf("generate user id: %w", err)
		}
		now := s.now().UTC()
		account = user.User{
			ID:           userID,
			Email:        input.Email,
			Name:         input.Name,
			PasswordHash: hash,
			Role:         user.RolePlayer,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.userRepo.Create(ctx, account); err != nil {
			if errors.Is(err, user.ErrDuplicateEmail) {
				return Session{}, ErrEmailTaken
			}
			return Session{}, fmt.Errorf("create user: %w", err)
		}
	}

	return s.session(ctx, account)
}

// claimable reports whether a passwordless account may be claimed by
// registering. Accounts carrying any elevated privilege never are.
func (s *AuthService) claimable(ctx context.Context, account user.User) (bool, error) {
	if account.Role != user.RolePlayer {
		return false, nil
	}
	if s.clubRepo == nil {
		return true, nil
	}
	memberships, err := s.clubRepo.ListMembershipsByUser(ctx, account.ID)
	if err != nil {
		return false, fmt.Errorf("list memberships: %w", err)
	}
	for _, m := range memberships {
		if m.Role == club.MemberRoleClubAdmin {
			return false, nil
		}
	}
	return true, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	input.Email = user.NormalizeEmail(input.Email)
	if input.Email == "" || input.Password == "" {
		return Session{}, ErrInvalidCredentials
	}

	account, exists, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return Session{}, fmt.Errorf("get user by email: %w", err)
	}
	if !exists || !account.HasPassword() {
		return Session{}, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(account.PasswordHash, input.Password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	return s.session(ctx, account)
}

func (s *AuthService) Me(ctx context.Context, principal user.Principal) (Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Me")
	defer span.End()

	if strings.TrimSpace(principal.UserID) == "" {
		return Profile{}, ErrMissingToken
	}

	account, exists, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return Profile{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return Profile{}, ErrUserNotFound
	}

	memberships, err := s.clubRepo.ListMembershipsByUser(ctx, account.ID)
	if err != nil {
		return Profile{}, fmt.Errorf("list memberships: %w", err)
	}

	return Profile{User: account, Memberships: memberships}, nil
}

func (s *AuthService) session(ctx context.Context, account user.User) (Session, error) {
	token, expiresAt, err := s.issuer.IssueAccessToken(ctx, account)
	if err != nil {
		return Session{}, fmt.Errorf("issue access token: %w", err)
	}
	return Session{Token: token, ExpiresAt: expiresAt, User: account}, nil
}
