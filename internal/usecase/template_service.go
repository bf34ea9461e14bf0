package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/template"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	"github.com/riskibarqy/gamemaster/internal/domain/window"
	idgen "github.com/riskibarqy/gamemaster/internal/platform/id"
)

type CreateTemplateInput struct {
	Name              string
	GameType          string
	Sport             string
	Status            string
	ActivationOpenAt  *time.Time
	ActivationCloseAt *time.Time
	JoinOpenAt        *time.Time
	JoinCloseAt       *time.Time
	StartAt           time.Time
	RulesJSON         []byte
}

type ListTemplatesInput struct {
	Status   string
	Upcoming bool
}

type TemplateService struct {
	templateRepo template.Repository
	policy       *AccessPolicy
	idGen        idgen.Generator
	now          func() time.Time
}

func NewTemplateService(templateRepo template.Repository, policy *AccessPolicy, idGen idgen.Generator) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		policy:       policy,
		idGen:        idGen,
		now:          time.Now,
	}
}

// Create stores a new template. Window bounds are not cross-checked against
// each other or against StartAt.
func (s *TemplateService) Create(ctx context.Context, principal user.Principal, input CreateTemplateInput) (template.Template, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TemplateService.Create")
	defer span.End()

	if err := s.policy.RequireSiteAdmin(ctx, principal, Target{}); err != nil {
		return template.Template{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.GameType = strings.TrimSpace(input.GameType)
	input.Sport = strings.TrimSpace(input.Sport)
	if err := requireMinLength("name", input.Name, 2); err != nil {
		return template.Template{}, err
	}
	if input.GameType == "" {
		return template.Template{}, invalidField("gameType", "is required")
	}
	if err := requireMinLength("sport", input.Sport, 2); err != nil {
		return template.Template{}, err
	}
	if input.StartAt.IsZero() {
		return template.Template{}, invalidField("startAt", "is required")
	}

	status := template.StatusDraft
	if strings.TrimSpace(input.Status) != "" {
		parsed, ok := template.ParseStatus(input.Status)
		if !ok {
			return template.Template{}, invalidField("status", "must be one of DRAFT, PUBLISHED, ARCHIVED")
		}
		status = parsed
	}

	rules, err := normalizeJSONBlob("rulesJson", input.RulesJSON)
	if err != nil {
		return template.Template{}, err
	}

	templateID, err := s.idGen.NewID()
	if err != nil {
		return template.Template{}, fmt.Errorf("generate template id: %w", err)
	}

	now := s.now().UTC()
	item := template.Template{
		ID:                templateID,
		Name:              input.Name,
		GameType:          input.GameType,
		Sport:             input.Sport,
		Status:            status,
		ActivationOpenAt:  utcPtr(input.ActivationOpenAt),
		ActivationCloseAt: utcPtr(input.ActivationCloseAt),
		JoinOpenAt:        utcPtr(input.JoinOpenAt),
		JoinCloseAt:       utcPtr(input.JoinCloseAt),
		StartAt:           input.StartAt.UTC(),
		RulesJSON:         rules,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.templateRepo.Create(ctx, item); err != nil {
		return template.Template{}, fmt.Errorf("create template: %w", err)
	}

	return item, nil
}

func (s *TemplateService) List(ctx context.Context, input ListTemplatesInput) ([]template.Template, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TemplateService.List")
	defer span.End()

	var filter template.Filter
	if strings.TrimSpace(input.Status) != "" {
		status, ok := template.ParseStatus(input.Status)
		if !ok {
			return nil, invalidField("status", "must be one of DRAFT, PUBLISHED, ARCHIVED")
		}
		filter.Status = status
	}
	if input.Upcoming {
		now := s.now().UTC()
		filter.StartsFrom = &now
	}

	items, err := s.templateRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return items, nil
}

func (s *TemplateService) Get(ctx context.Context, templateID string) (template.Template, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TemplateService.Get")
	defer span.End()

	return loadTemplate(ctx, s.templateRepo, templateID)
}

// ensureActivatable applies the activation gate: the template must be
// published and now must fall inside its activation window.
func ensureActivatable(tpl template.Template, now time.Time) error {
	if !tpl.IsPublished() {
		return ErrTemplateNotPublished
	}
	if tpl.ActivationWindow().Position(now) != window.Inside {
		return ErrActivationWindowClosed
	}
	return nil
}

func loadTemplate(ctx context.Context, repo template.Repository, templateID string) (template.Template, error) {
	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		return template.Template{}, ErrTemplateNotFound
	}
	item, exists, err := repo.GetByID(ctx, templateID)
	if err != nil {
		return template.Template{}, fmt.Errorf("get template: %w", err)
	}
	if !exists {
		return template.Template{}, ErrTemplateNotFound
	}
	return item, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
