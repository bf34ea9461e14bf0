package template

import (
	"strings"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/window"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

// ParseStatus upper-cases v and reports whether it names a known status.
func ParseStatus(v string) (Status, bool) {
	status := Status(strings.ToUpper(strings.TrimSpace(v)))
	switch status {
	case StatusDraft, StatusPublished, StatusArchived:
		return status, true
	default:
		return "", false
	}
}

// Template is a platform-defined game format that clubs activate into
// competitions. Rules are stored verbatim and never interpreted here.
type Template struct {
	ID                string
	Name              string
	GameType          string
	Sport             string
	Status            Status
	ActivationOpenAt  *time.Time
	ActivationCloseAt *time.Time
	JoinOpenAt        *time.Time
	JoinCloseAt       *time.Time
	StartAt           time.Time
	RulesJSON         []byte
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (t Template) IsPublished() bool {
	return t.Status == StatusPublished
}

// ActivationWindow bounds when clubs may activate the template.
func (t Template) ActivationWindow() window.Window {
	return window.New(t.ActivationOpenAt, t.ActivationCloseAt)
}

// OpeningWindow bounds when a competition built from the template may be
// opened. Without a join close the window ends at the template start.
func (t Template) OpeningWindow() window.Window {
	startAt := t.StartAt
	return window.New(t.JoinOpenAt, window.FirstSet(t.JoinCloseAt, &startAt))
}

type Filter struct {
	Status Status
	// StartsFrom keeps templates whose StartAt is at or after it.
	StartsFrom *time.Time
}
