package pick

import "time"

// Pick is a user's team choice for one fixture. A user holds at most one
// pick per fixture; resubmitting replaces it.
type Pick struct {
	ID            string
	UserID        string
	CompetitionID string
	FixtureID     string
	TeamPicked    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
