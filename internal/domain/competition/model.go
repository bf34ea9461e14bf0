package competition

import (
	"errors"
	"strings"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/template"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	"github.com/riskibarqy/gamemaster/internal/domain/window"
)

type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusOpen     Status = "OPEN"
	StatusRunning  Status = "RUNNING"
	StatusFinished Status = "FINISHED"
)

const DefaultCurrency = "EUR"

var ErrDuplicateEntry = errors.New("competition entry already exists")

func ParseStatus(v string) (Status, bool) {
	status := Status(strings.ToUpper(strings.TrimSpace(v)))
	switch status {
	case StatusDraft, StatusOpen, StatusRunning, StatusFinished:
		return status, true
	default:
		return "", false
	}
}

// Competition is a club-owned instance of a game. TemplateID is empty for
// competitions created directly rather than activated from a template.
type Competition struct {
	ID            string
	ClubID        string
	TemplateID    string
	Name          string
	Sport         string
	Status        Status
	EntryFeeCents int64
	Currency      string
	RulesJSON     []byte
	StartRoundAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c Competition) HasTemplate() bool {
	return c.TemplateID != ""
}

// JoinWindow bounds when players may enter. The close bound falls back from
// the template join close to the competition's first round, then to the
// template start. tpl may be nil for template-less competitions.
func (c Competition) JoinWindow(tpl *template.Template) window.Window {
	if tpl == nil {
		return window.New(nil, c.StartRoundAt)
	}
	startAt := tpl.StartAt
	return window.New(tpl.JoinOpenAt, window.FirstSet(tpl.JoinCloseAt, c.StartRoundAt, &startAt))
}

type Filter struct {
	ClubID string
	Status Status
}

type EntryStatus string

const EntryStatusActive EntryStatus = "ACTIVE"

type Entry struct {
	ID            string
	CompetitionID string
	UserID        string
	Status        EntryStatus
	CreatedAt     time.Time
}

// JoinParams carries everything the atomic join needs. NewUserID is used only
// when no user exists for Email. Name, when set, replaces the display name.
type JoinParams struct {
	CompetitionID string
	ClubID        string
	Email         string
	Name          string
	NewUserID     string
	EntryID       string
	Now           time.Time
}

type JoinResult struct {
	Entry       Entry
	User        user.User
	UserCreated bool
}
