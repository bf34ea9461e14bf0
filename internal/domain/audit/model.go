package audit

import "time"

type Outcome string

const (
	OutcomeAllow   Outcome = "ALLOW"
	OutcomeDeny    Outcome = "DENY"
	OutcomeSuccess Outcome = "SUCCESS"
)

const (
	ActionRequireSiteAdmin    = "authz.require_site_admin"
	ActionRequireClubAdmin    = "authz.require_club_admin"
	ActionCompetitionOpen     = "competition.open"
	ActionCompetitionActivate = "competition.activate"
	ActionCompetitionCreate   = "competition.create"
	ActionClubAdminAssign     = "club.assign_admin"
)

// Event records an authorization decision or lifecycle transition.
type Event struct {
	ID            string
	Action        string
	Outcome       Outcome
	ActorUserID   string
	ClubID        string
	CompetitionID string
	TemplateID    string
	Reason        string
	OccurredAt    time.Time
}
