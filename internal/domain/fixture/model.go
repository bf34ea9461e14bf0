package fixture

import (
	"strconv"
	"strings"
	"time"
)

type RoundStatus string

const (
	RoundStatusUpcoming  RoundStatus = "UPCOMING"
	RoundStatusLocked    RoundStatus = "LOCKED"
	RoundStatusCompleted RoundStatus = "COMPLETED"
)

// Round is one matchday of a competition. Rounds and fixtures are maintained
// outside this service and only read here.
type Round struct {
	ID             string
	CompetitionID  string
	Number         int
	Status         RoundStatus
	PickDeadlineAt *time.Time
}

func (r Round) Label() string {
	return "Round " + strconv.Itoa(r.Number)
}

func (r Round) IsUpcoming() bool {
	return r.Status == RoundStatusUpcoming
}

type Fixture struct {
	ID         string
	RoundID    string
	HomeTeamID string
	AwayTeamID string
	KickoffAt  *time.Time
	Status     string
}

// HasTeam reports whether teamID plays in the fixture.
func (f Fixture) HasTeam(teamID string) bool {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return false
	}
	return teamID == f.HomeTeamID || teamID == f.AwayTeamID
}
