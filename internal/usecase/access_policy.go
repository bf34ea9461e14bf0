package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/gamemaster/internal/domain/audit"
	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
)

// Target names the resources an authorization decision is about. ClubID is
// the scope checked by RequireClubAdmin; the other ids are recorded only.
type Target struct {
	ClubID        string
	CompetitionID string
	TemplateID    string
}

// AccessPolicy decides whether an authenticated principal may act on a club.
// Site admins pass every check. Every decision is audited.
type AccessPolicy struct {
	clubRepo club.Repository
	audit    auditSink
}

func NewAccessPolicy(clubRepo club.Repository, audit auditSink) *AccessPolicy {
	return &AccessPolicy{clubRepo: clubRepo, audit: audit}
}

func (p *AccessPolicy) RequireSiteAdmin(ctx context.Context, principal user.Principal, target Target) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccessPolicy.RequireSiteAdmin")
	defer span.End()

	if principal.UserID == "" {
		p.record(ctx, audit.ActionRequireSiteAdmin, audit.OutcomeDeny, principal, target, "unauthenticated")
		return ErrMissingToken
	}
	if !principal.IsSiteAdmin() {
		p.record(ctx, audit.ActionRequireSiteAdmin, audit.OutcomeDeny, principal, target, "role "+string(principal.Role))
		return ErrSiteAdminRequired
	}

	p.record(ctx, audit.ActionRequireSiteAdmin, audit.OutcomeAllow, principal, target, "")
	return nil
}

func (p *AccessPolicy) RequireClubAdmin(ctx context.Context, principal user.Principal, target Target) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccessPolicy.RequireClubAdmin")
	defer span.End()

	if principal.UserID == "" {
		p.record(ctx, audit.ActionRequireClubAdmin, audit.OutcomeDeny, principal, target, "unauthenticated")
		return ErrMissingToken
	}
	if principal.IsSiteAdmin() {
		p.record(ctx, audit.ActionRequireClubAdmin, audit.OutcomeAllow, principal, target, "site admin")
		return nil
	}

	member, exists, err := p.clubRepo.GetMember(ctx, target.ClubID, principal.UserID)
	if err != nil {
		return fmt.Errorf("get club membership: %w", err)
	}
	if !exists || !member.IsAdmin() {
		p.record(ctx, audit.ActionRequireClubAdmin, audit.OutcomeDeny, principal, target, "not a club admin")
		return ErrNotClubAdmin
	}

	p.record(ctx, audit.ActionRequireClubAdmin, audit.OutcomeAllow, principal, target, "club admin")
	return nil
}

func (p *AccessPolicy) record(ctx context.Context, action string, outcome audit.Outcome, principal user.Principal, target Target, reason string) {
	if p.audit == nil {
		return
	}
	p.audit.Record(ctx, audit.Event{
		Action:        action,
		Outcome:       outcome,
		ActorUserID:   principal.UserID,
		ClubID:        target.ClubID,
		CompetitionID: target.CompetitionID,
		TemplateID:    target.TemplateID,
		Reason:        reason,
	})
}
