package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/competition"
	"github.com/riskibarqy/gamemaster/internal/domain/template"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	idgen "github.com/riskibarqy/gamemaster/internal/platform/id"
)

type JoinCompetitionInput struct {
	CompetitionID string
	Email         string
	Name          string
}

type EntryService struct {
	competitionRepo competition.Repository
	templateRepo    template.Repository
	entryRepo       competition.EntryRepository
	idGen           idgen.Generator
	now             func() time.Time
}

func NewEntryService(
	competitionRepo competition.Repository,
	templateRepo template.Repository,
	entryRepo competition.EntryRepository,
	idGen idgen.Generator,
) *EntryService {
	return &EntryService{
		competitionRepo: competitionRepo,
		templateRepo:    templateRepo,
		entryRepo:       entryRepo,
		idGen:           idGen,
		now:             time.Now,
	}
}

// Join enters a player, identified by email, into an OPEN competition whose
// join window contains now. Unknown emails become PLAYER users.
func (s *EntryService) Join(ctx context.Context, input JoinCompetitionInput) (competition.JoinResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Join")
	defer span.End()

	input.Email = user.NormalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if input.Email == "" {
		return competition.JoinResult{}, invalidField("email", "is required")
	}

	item, err := loadCompetition(ctx, s.competitionRepo, input.CompetitionID)
	if err != nil {
		return competition.JoinResult{}, err
	}
	if item.Status != competition.StatusOpen {
		return competition.JoinResult{}, ErrCompetitionNotOpen
	}

	var tpl *template.Template
	if item.HasTemplate() {
		found, exists, err := s.templateRepo.GetByID(ctx, item.TemplateID)
		if err != nil {
			return competition.JoinResult{}, fmt.Errorf("get template for join: %w", err)
		}
		if exists {
			tpl = &found
		}
	}

	now := s.now().UTC()
	if !item.JoinWindow(tpl).Contains(now) {
		return competition.JoinResult{}, ErrJoinWindowClosed
	}

	userID, err := s.idGen.NewID()
	if err != nil {
		return competition.JoinResult{}, fmt.Errorf("generate user id: %w", err)
	}
	entryID, err := s.idGen.NewID()
	if err != nil {
		return competition.JoinResult{}, fmt.Errorf("generate entry id: %w", err)
	}

	result, err := s.entryRepo.Join(ctx, competition.JoinParams{
		CompetitionID: item.ID,
		ClubID:        item.ClubID,
		Email:         input.Email,
		Name:          input.Name,
		NewUserID:     userID,
		EntryID:       entryID,
		Now:           now,
	})
	if err != nil {
		if errors.Is(err, competition.ErrDuplicateEntry) {
			return competition.JoinResult{}, ErrAlreadyJoined
		}
		return competition.JoinResult{}, fmt.Errorf("join competition: %w", err)
	}

	return result, nil
}
