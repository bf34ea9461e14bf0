package httpapi

import (
	"encoding/json"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/domain/competition"
	"github.com/riskibarqy/gamemaster/internal/domain/fixture"
	"github.com/riskibarqy/gamemaster/internal/domain/pick"
	"github.com/riskibarqy/gamemaster/internal/domain/template"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	"github.com/riskibarqy/gamemaster/internal/usecase"
)

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

type sessionDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      userDTO   `json:"user"`
}

type membershipDTO struct {
	ClubID   string `json:"clubId"`
	ClubName string `json:"clubName"`
	ClubSlug string `json:"clubSlug"`
	Role     string `json:"role"`
}

type profileDTO struct {
	UserID      string          `json:"userId"`
	Email       string          `json:"email"`
	Name        string          `json:"name,omitempty"`
	Role        string          `json:"role"`
	ClubIDs     []string        `json:"clubIds"`
	Memberships []membershipDTO `json:"memberships"`
}

type clubDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	BrandingJSON json.RawMessage `json:"brandingJson,omitempty"`
	CreatedAt    *time.Time      `json:"createdAt,omitempty"`
}

type clubMemberDTO struct {
	ClubID string `json:"clubId"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type templateDTO struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	GameType          string          `json:"gameType"`
	Sport             string          `json:"sport"`
	Status            string          `json:"status"`
	ActivationOpenAt  *time.Time      `json:"activationOpenAt"`
	ActivationCloseAt *time.Time      `json:"activationCloseAt"`
	JoinOpenAt        *time.Time      `json:"joinOpenAt"`
	JoinCloseAt       *time.Time      `json:"joinCloseAt"`
	StartAt           time.Time       `json:"startAt"`
	RulesJSON         json.RawMessage `json:"rulesJson"`
	CreatedAt         time.Time       `json:"createdAt"`
}

type competitionDTO struct {
	ID            string          `json:"id"`
	ClubID        string          `json:"clubId"`
	TemplateID    *string         `json:"templateId"`
	Name          string          `json:"name"`
	Sport         string          `json:"sport"`
	Status        string          `json:"status"`
	EntryFeeCents int64           `json:"entryFeeCents"`
	Currency      string          `json:"currency"`
	RulesJSON     json.RawMessage `json:"rulesJson,omitempty"`
	StartRoundAt  *time.Time      `json:"startRoundAt"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type competitionClubDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type competitionTemplateDTO struct {
	ID        string          `json:"id"`
	GameType  string          `json:"gameType"`
	RulesJSON json.RawMessage `json:"rulesJson"`
}

type roundDTO struct {
	ID         string       `json:"id"`
	Number     int          `json:"roundNumber"`
	Name       string       `json:"name"`
	Status     string       `json:"status"`
	DeadlineAt *time.Time   `json:"deadlineAt"`
	Fixtures   []fixtureDTO `json:"fixtures"`
}

// fixtureDTO has no fields yet: competition detail always renders
// "fixtures": [] per round until fixtures get their own read endpoint.
type fixtureDTO struct{}

type competitionDetailDTO struct {
	competitionDTO
	Club     competitionClubDTO      `json:"club"`
	Template *competitionTemplateDTO `json:"template"`
	Rounds   []roundDTO              `json:"rounds"`
}

type entryDTO struct {
	ID            string    `json:"id"`
	CompetitionID string    `json:"competitionId"`
	UserID        string    `json:"userId"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type joinDTO struct {
	Entry entryDTO `json:"entry"`
	User  userDTO  `json:"user"`
}

type pickDTO struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	CompetitionID string    `json:"competitionId"`
	FixtureID     string    `json:"fixtureId"`
	TeamPicked    string    `json:"teamPicked"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}

func userToDTO(u user.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
}

func sessionToDTO(s usecase.Session) sessionDTO {
	return sessionDTO{Token: s.Token, ExpiresAt: s.ExpiresAt.UTC(), User: userToDTO(s.User)}
}

func profileToDTO(p usecase.Profile) profileDTO {
	out := profileDTO{
		UserID:      p.User.ID,
		Email:       p.User.Email,
		Name:        p.User.Name,
		Role:        string(p.User.Role),
		ClubIDs:     make([]string, 0, len(p.Memberships)),
		Memberships: make([]membershipDTO, 0, len(p.Memberships)),
	}
	for _, m := range p.Memberships {
		out.ClubIDs = append(out.ClubIDs, m.Club.ID)
		out.Memberships = append(out.Memberships, membershipDTO{
			ClubID:   m.Club.ID,
			ClubName: m.Club.Name,
			ClubSlug: m.Club.Slug,
			Role:     string(m.Role),
		})
	}
	return out
}

func clubToDTO(c club.Club) clubDTO {
	createdAt := c.CreatedAt.UTC()
	return clubDTO{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		BrandingJSON: rawJSON(c.BrandingJSON),
		CreatedAt:    &createdAt,
	}
}

// clubSummaryToDTO is the list/lookup shape: id, name and slug only.
func clubSummaryToDTO(c club.Club) clubDTO {
	return clubDTO{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func templateToDTO(t template.Template) templateDTO {
	return templateDTO{
		ID:                t.ID,
		Name:              t.Name,
		GameType:          t.GameType,
		Sport:             t.Sport,
		Status:            string(t.Status),
		ActivationOpenAt:  t.ActivationOpenAt,
		ActivationCloseAt: t.ActivationCloseAt,
		JoinOpenAt:        t.JoinOpenAt,
		JoinCloseAt:       t.JoinCloseAt,
		StartAt:           t.StartAt,
		RulesJSON:         rawJSON(t.RulesJSON),
		CreatedAt:         t.CreatedAt,
	}
}

func competitionToDTO(c competition.Competition) competitionDTO {
	out := competitionDTO{
		ID:            c.ID,
		ClubID:        c.ClubID,
		Name:          c.Name,
		Sport:         c.Sport,
		Status:        string(c.Status),
		EntryFeeCents: c.EntryFeeCents,
		Currency:      c.Currency,
		RulesJSON:     rawJSON(c.RulesJSON),
		StartRoundAt:  c.StartRoundAt,
		CreatedAt:     c.CreatedAt,
	}
	if c.HasTemplate() {
		templateID := c.TemplateID
		out.TemplateID = &templateID
	}
	return out
}

// competitionDetailToDTO reports every round with an empty fixture list;
// fixtures are not exposed on the detail read yet.
func competitionDetailToDTO(d usecase.CompetitionDetail) competitionDetailDTO {
	out := competitionDetailDTO{
		competitionDTO: competitionToDTO(d.Competition),
		Club:           competitionClubDTO{ID: d.Club.ID, Name: d.Club.Name, Slug: d.Club.Slug},
		Rounds:         make([]roundDTO, 0, len(d.Rounds)),
	}
	if d.Template != nil {
		out.Template = &competitionTemplateDTO{
			ID:        d.Template.ID,
			GameType:  d.Template.GameType,
			RulesJSON: rawJSON(d.Template.RulesJSON),
		}
	}
	for _, r := range d.Rounds {
		out.Rounds = append(out.Rounds, roundToDTO(r))
	}
	return out
}

func roundToDTO(r fixture.Round) roundDTO {
	return roundDTO{
		ID:         r.ID,
		Number:     r.Number,
		Name:       r.Label(),
		Status:     string(r.Status),
		DeadlineAt: r.PickDeadlineAt,
		Fixtures:   []fixtureDTO{},
	}
}

func joinToDTO(res competition.JoinResult) joinDTO {
	return joinDTO{
		Entry: entryDTO{
			ID:            res.Entry.ID,
			CompetitionID: res.Entry.CompetitionID,
			UserID:        res.Entry.UserID,
			Status:        string(res.Entry.Status),
			CreatedAt:     res.Entry.CreatedAt,
		},
		User: userToDTO(res.User),
	}
}

func pickToDTO(p pick.Pick) pickDTO {
	return pickDTO{
		ID:            p.ID,
		UserID:        p.UserID,
		CompetitionID: p.CompetitionID,
		FixtureID:     p.FixtureID,
		TeamPicked:    p.TeamPicked,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
