package club

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// MemberRole is a user's role inside one club.
type MemberRole string

const (
	MemberRoleClubAdmin MemberRole = "CLUB_ADMIN"
	MemberRolePlayer    MemberRole = "PLAYER"
)

var ErrDuplicateSlug = errors.New("club slug already exists")

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type Club struct {
	ID           string
	Name         string
	Slug         string
	BrandingJSON []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Member struct {
	ClubID    string
	UserID    string
	Role      MemberRole
	CreatedAt time.Time
}

func (m Member) IsAdmin() bool {
	return m.Role == MemberRoleClubAdmin
}

// Membership is one club a user belongs to, with their role there.
type Membership struct {
	Club Club
	Role MemberRole
}

// NormalizeSlug lower-cases a supplied slug, or derives one from name when
// the slug is blank.
func NormalizeSlug(raw, name string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return slug.Make(name)
	}
	return value
}

// ValidSlug accepts lower-case letters, digits and dashes only.
func ValidSlug(value string) bool {
	return slugPattern.MatchString(value)
}
