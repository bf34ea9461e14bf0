package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/fixture"
	"github.com/riskibarqy/gamemaster/internal/domain/pick"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	idgen "github.com/riskibarqy/gamemaster/internal/platform/id"
)

type SubmitPickInput struct {
	Email      string
	FixtureID  string
	TeamPicked string
}

// missingPickFields is returned when any of the three pick fields is blank.
var missingPickFields = &ValidationError{Message: "email, fixtureId, and teamPicked are required"}

type PickService struct {
	userRepo    user.Repository
	fixtureRepo fixture.Repository
	pickRepo    pick.Repository
	idGen       idgen.Generator
	now         func() time.Time
}

func NewPickService(userRepo user.Repository, fixtureRepo fixture.Repository, pickRepo pick.Repository, idGen idgen.Generator) *PickService {
	return &PickService{
		userRepo:    userRepo,
		fixtureRepo: fixtureRepo,
		pickRepo:    pickRepo,
		idGen:       idGen,
		now:         time.Now,
	}
}

// Submit stores the user's pick for a fixture, replacing any earlier pick for
// the same fixture. Picks close when the round leaves UPCOMING or its
// deadline passes.
func (s *PickService) Submit(ctx context.Context, input SubmitPickInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Submit")
	defer span.End()

	input.Email = user.NormalizeEmail(input.Email)
	input.FixtureID = strings.TrimSpace(input.FixtureID)
	input.TeamPicked = strings.TrimSpace(input.TeamPicked)
	if input.Email == "" || input.FixtureID == "" || input.TeamPicked == "" {
		return pick.Pick{}, missingPickFields
	}

	player, exists, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("get user by email: %w", err)
	}
	if !exists {
		return pick.Pick{}, ErrUserNotFound
	}

	match, round, exists, err := s.fixtureRepo.GetFixture(ctx, input.FixtureID)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return pick.Pick{}, ErrFixtureNotFound
	}
	if !match.HasTeam(input.TeamPicked) {
		return pick.Pick{}, ErrInvalidTeamSelection
	}
	if !round.IsUpcoming() {
		return pick.Pick{}, ErrRoundClosed
	}

	now := s.now().UTC()
	if round.PickDeadlineAt != nil && now.After(*round.PickDeadlineAt) {
		return pick.Pick{}, ErrDeadlinePassed
	}

	pickID, err := s.idGen.NewID()
	if err != nil {
		return pick.Pick{}, fmt.Errorf("generate pick id: %w", err)
	}

	stored, err := s.pickRepo.Upsert(ctx, pick.Pick{
		ID:            pickID,
		UserID:        player.ID,
		CompetitionID: round.CompetitionID,
		FixtureID:     match.ID,
		TeamPicked:    input.TeamPicked,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return pick.Pick{}, fmt.Errorf("upsert pick: %w", err)
	}
	return stored, nil
}
