package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/audit"
	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/domain/competition"
	"github.com/riskibarqy/gamemaster/internal/domain/fixture"
	"github.com/riskibarqy/gamemaster/internal/domain/template"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	"github.com/riskibarqy/gamemaster/internal/domain/window"
	idgen "github.com/riskibarqy/gamemaster/internal/platform/id"
	"github.com/sourcegraph/conc/pool"
)

type ActivateTemplateInput struct {
	ClubID        string
	TemplateID    string
	Name          string
	EntryFeeCents int64
	Currency      string
}

type CreateCompetitionInput struct {
	ClubID        string
	Name          string
	Sport         string
	EntryFeeCents int64
	Currency      string
	RulesJSON     []byte
	StartRoundAt  *time.Time
}

type ListCompetitionsInput struct {
	ClubID string
	Status string
}

// CompetitionDetail is the public read model of one competition. Template is
// nil for template-less competitions.
type CompetitionDetail struct {
	Competition competition.Competition
	Club        club.Club
	Template    *template.Template
	Rounds      []fixture.Round
}

type CompetitionService struct {
	competitionRepo competition.Repository
	clubRepo        club.Repository
	templateRepo    template.Repository
	fixtureRepo     fixture.Repository
	policy          *AccessPolicy
	audit           auditSink
	idGen           idgen.Generator
	now             func() time.Time
}

func NewCompetitionService(
	competitionRepo competition.Repository,
	clubRepo club.Repository,
	templateRepo template.Repository,
	fixtureRepo fixture.Repository,
	policy *AccessPolicy,
	audit auditSink,
	idGen idgen.Generator,
) *CompetitionService {
	return &CompetitionService{
		competitionRepo: competitionRepo,
		clubRepo:        clubRepo,
		templateRepo:    templateRepo,
		fixtureRepo:     fixtureRepo,
		policy:          policy,
		audit:           audit,
		idGen:           idGen,
		now:             time.Now,
	}
}

// Activate creates a DRAFT competition for a club from a published template
// whose activation window is open.
func (s *CompetitionService) Activate(ctx context.Context, principal user.Principal, input ActivateTemplateInput) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Activate")
	defer span.End()

	input.ClubID = strings.TrimSpace(input.ClubID)
	input.TemplateID = strings.TrimSpace(input.TemplateID)
	input.Name = strings.TrimSpace(input.Name)
	target := Target{ClubID: input.ClubID, TemplateID: input.TemplateID}

	if err := s.policy.RequireClubAdmin(ctx, principal, target); err != nil {
		return competition.Competition{}, err
	}
	if input.Name != "" {
		if err := requireMinLength("name", input.Name, 2); err != nil {
			return competition.Competition{}, err
		}
	}
	if input.EntryFeeCents < 0 {
		return competition.Competition{}, invalidField("entryFeeCents", "must be >= 0")
	}
	currency, err := normalizeCurrency(input.Currency)
	if err != nil {
		return competition.Competition{}, err
	}

	if err := s.ensureClubExists(ctx, input.ClubID); err != nil {
		return competition.Competition{}, err
	}
	tpl, err := loadTemplate(ctx, s.templateRepo, input.TemplateID)
	if err != nil {
		return competition.Competition{}, err
	}

	now := s.now().UTC()
	if err := ensureActivatable(tpl, now); err != nil {
		return competition.Competition{}, err
	}

	name := input.Name
	if name == "" {
		name = tpl.Name
	}
	startAt := tpl.StartAt

	item, err := s.create(ctx, competition.Competition{
		ClubID:        input.ClubID,
		TemplateID:    tpl.ID,
		Name:          name,
		Sport:         tpl.Sport,
		Status:        competition.StatusDraft,
		EntryFeeCents: input.EntryFeeCents,
		Currency:      currency,
		RulesJSON:     append([]byte(nil), tpl.RulesJSON...),
		StartRoundAt:  &startAt,
	}, now)
	if err != nil {
		return competition.Competition{}, err
	}

	s.record(ctx, audit.ActionCompetitionActivate, principal, item)
	return item, nil
}

// CreateDirect creates a template-less DRAFT competition.
func (s *CompetitionService) CreateDirect(ctx context.Context, principal user.Principal, input CreateCompetitionInput) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.CreateDirect")
	defer span.End()

	input.ClubID = strings.TrimSpace(input.ClubID)
	input.Name = strings.TrimSpace(input.Name)
	input.Sport = strings.TrimSpace(input.Sport)

	if err := s.policy.RequireClubAdmin(ctx, principal, Target{ClubID: input.ClubID}); err != nil {
		return competition.Competition{}, err
	}
	if err := requireMinLength("name", input.Name, 2); err != nil {
		return competition.Competition{}, err
	}
	if err := requireMinLength("sport", input.Sport, 2); err != nil {
		return competition.Competition{}, err
	}
	if input.EntryFeeCents < 0 {
		return competition.Competition{}, invalidField("entryFeeCents", "must be >= 0")
	}
	currency, err := normalizeCurrency(input.Currency)
	if err != nil {
		return competition.Competition{}, err
	}
	rules, err := normalizeJSONBlob("rulesJson", input.RulesJSON)
	if err != nil {
		return competition.Competition{}, err
	}
	if err := s.ensureClubExists(ctx, input.ClubID); err != nil {
		return competition.Competition{}, err
	}

	item, err := s.create(ctx, competition.Competition{
		ClubID:        input.ClubID,
		Name:          input.Name,
		Sport:         input.Sport,
		Status:        competition.StatusDraft,
		EntryFeeCents: input.EntryFeeCents,
		Currency:      currency,
		RulesJSON:     rules,
		StartRoundAt:  utcPtr(input.StartRoundAt),
	}, s.now().UTC())
	if err != nil {
		return competition.Competition{}, err
	}

	s.record(ctx, audit.ActionCompetitionCreate, principal, item)
	return item, nil
}

// Open moves a DRAFT competition to OPEN. When a template is attached, now
// must fall inside the template's opening window.
func (s *CompetitionService) Open(ctx context.Context, principal user.Principal, competitionID string) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Open")
	defer span.End()

	item, err := loadCompetition(ctx, s.competitionRepo, competitionID)
	if err != nil {
		return competition.Competition{}, err
	}

	target := Target{ClubID: item.ClubID, CompetitionID: item.ID, TemplateID: item.TemplateID}
	if err := s.policy.RequireClubAdmin(ctx, principal, target); err != nil {
		return competition.Competition{}, err
	}
	if item.Status != competition.StatusDraft {
		return competition.Competition{}, ErrOnlyDraftCanOpen
	}

	now := s.now().UTC()
	if item.HasTemplate() {
		tpl, exists, err := s.templateRepo.GetByID(ctx, item.TemplateID)
		if err != nil {
			return competition.Competition{}, fmt.Errorf("get template for open: %w", err)
		}
		if exists {
			switch tpl.OpeningWindow().Position(now) {
			case window.Before:
				return competition.Competition{}, ErrTooEarlyToOpen
			case window.After:
				return competition.Competition{}, ErrJoinWindowClosed
			}
		}
	}

	changed, err := s.competitionRepo.TransitionStatus(ctx, item.ID, competition.StatusDraft, competition.StatusOpen)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("open competition: %w", err)
	}
	if !changed {
		return competition.Competition{}, ErrOnlyDraftCanOpen
	}

	item.Status = competition.StatusOpen
	item.UpdatedAt = now
	s.record(ctx, audit.ActionCompetitionOpen, principal, item)
	return item, nil
}

func (s *CompetitionService) ListByClub(ctx context.Context, input ListCompetitionsInput) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListByClub")
	defer span.End()

	filter := competition.Filter{ClubID: strings.TrimSpace(input.ClubID)}
	if strings.TrimSpace(input.Status) != "" {
		status, ok := competition.ParseStatus(input.Status)
		if !ok {
			return nil, invalidField("status", "must be one of DRAFT, OPEN, RUNNING, FINISHED")
		}
		filter.Status = status
	}

	items, err := s.competitionRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return items, nil
}

// Get loads a competition with its club, template and rounds. The three
// lookups run concurrently.
func (s *CompetitionService) Get(ctx context.Context, competitionID string) (CompetitionDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Get")
	defer span.End()

	item, err := loadCompetition(ctx, s.competitionRepo, competitionID)
	if err != nil {
		return CompetitionDetail{}, err
	}

	detail := CompetitionDetail{Competition: item}
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		owner, _, err := s.clubRepo.GetByID(ctx, item.ClubID)
		if err != nil {
			return fmt.Errorf("get competition club: %w", err)
		}
		detail.Club = owner
		return nil
	})
	if item.HasTemplate() {
		p.Go(func(ctx context.Context) error {
			tpl, exists, err := s.templateRepo.GetByID(ctx, item.TemplateID)
			if err != nil {
				return fmt.Errorf("get competition template: %w", err)
			}
			if exists {
				detail.Template = &tpl
			}
			return nil
		})
	}
	p.Go(func(ctx context.Context) error {
		rounds, err := s.fixtureRepo.ListRoundsByCompetition(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list competition rounds: %w", err)
		}
		detail.Rounds = rounds
		return nil
	})
	if err := p.Wait(); err != nil {
		return CompetitionDetail{}, err
	}

	return detail, nil
}

func (s *CompetitionService) create(ctx context.Context, item competition.Competition, now time.Time) (competition.Competition, error) {
	competitionID, err := s.idGen.NewID()
	if err != nil {
		return competition.Competition{}, fmt.Errorf("generate competition id: %w", err)
	}
	item.ID = competitionID
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.competitionRepo.Create(ctx, item); err != nil {
		return competition.Competition{}, fmt.Errorf("create competition: %w", err)
	}
	return item, nil
}

func (s *CompetitionService) ensureClubExists(ctx context.Context, clubID string) error {
	if clubID == "" {
		return ErrClubNotFound
	}
	_, exists, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return fmt.Errorf("get club: %w", err)
	}
	if !exists {
		return ErrClubNotFound
	}
	return nil
}

func (s *CompetitionService) record(ctx context.Context, action string, principal user.Principal, item competition.Competition) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, audit.Event{
		Action:        action,
		Outcome:       audit.OutcomeSuccess,
		ActorUserID:   principal.UserID,
		ClubID:        item.ClubID,
		CompetitionID: item.ID,
		TemplateID:    item.TemplateID,
	})
}

func loadCompetition(ctx context.Context, repo competition.Repository, competitionID string) (competition.Competition, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, ErrCompetitionNotFound
	}
	item, exists, err := repo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, ErrCompetitionNotFound
	}
	return item, nil
}
