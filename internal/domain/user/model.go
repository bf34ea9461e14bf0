package user

import (
	"errors"
	"strings"
	"time"
)

// Role is the global role carried in a user's token.
type Role string

const (
	RoleSiteAdmin Role = "SITE_ADMIN"
	RoleClubAdmin Role = "CLUB_ADMIN"
	RolePlayer    Role = "PLAYER"
)

var ErrDuplicateEmail = errors.New("user email already exists")

func (r Role) Valid() bool {
	switch r {
	case RoleSiteAdmin, RoleClubAdmin, RolePlayer:
		return true
	default:
		return false
	}
}

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword is false for users created implicitly by joining a competition.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

func (p Principal) IsSiteAdmin() bool {
	return p.Role == RoleSiteAdmin
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
