package fixture

import "context"

type Repository interface {
	// ListRoundsByCompetition returns rounds ordered by round number.
	ListRoundsByCompetition(ctx context.Context, competitionID string) ([]Round, error)
	GetFixture(ctx context.Context, fixtureID string) (Fixture, Round, bool, error)
}
