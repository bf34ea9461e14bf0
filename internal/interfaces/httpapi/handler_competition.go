package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/competition"
	"github.com/riskibarqy/gamemaster/internal/usecase"
)

type createCompetitionRequest struct {
	Name          string          `json:"name" validate:"required,min=2,max=120"`
	Sport         string          `json:"sport" validate:"required,min=2,max=60"`
	EntryFeeCents int64           `json:"entryFeeCents" validate:"gte=0"`
	Currency      string          `json:"currency" validate:"omitempty,len=3"`
	RulesJSON     json.RawMessage `json:"rulesJson"`
	StartRoundAt  *time.Time      `json:"startRoundAt"`
}

type activateTemplateRequest struct {
	Name          string `json:"name" validate:"omitempty,min=2,max=120"`
	EntryFeeCents int64  `json:"entryFeeCents" validate:"gte=0"`
	Currency      string `json:"currency" validate:"omitempty,len=3"`
}

type joinCompetitionRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,max=100"`
}

func (h *Handler) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCompetition")
	defer span.End()

	principal, _ := principalFromContext(ctx)
	clubID := r.PathValue("clubId")

	var req createCompetitionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.competitionService.CreateDirect(ctx, principal, usecase.CreateCompetitionInput{
		ClubID:        clubID,
		Name:          req.Name,
		Sport:         req.Sport,
		EntryFeeCents: req.EntryFeeCents,
		Currency:      req.Currency,
		RulesJSON:     req.RulesJSON,
		StartRoundAt:  req.StartRoundAt,
	})
	if err != nil {
		h.fail(ctx, w, "create competition failed", err, "club_id", clubID)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, competitionToDTO(item))
}

func (h *Handler) ListClubCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubCompetitions")
	defer span.End()

	clubID := r.PathValue("clubId")
	items, err := h.competitionService.ListByClub(ctx, usecase.ListCompetitionsInput{
		ClubID: clubID,
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		h.fail(ctx, w, "list competitions failed", err, "club_id", clubID)
		return
	}

	writeItems(ctx, w, competitionsToDTO(items))
}

func (h *Handler) ActivateTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateTemplate")
	defer span.End()

	principal, _ := principalFromContext(ctx)
	clubID := r.PathValue("clubId")
	templateID := r.PathValue("templateId")

	var req activateTemplateRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.competitionService.Activate(ctx, principal, usecase.ActivateTemplateInput{
		ClubID:        clubID,
		TemplateID:    templateID,
		Name:          req.Name,
		EntryFeeCents: req.EntryFeeCents,
		Currency:      req.Currency,
	})
	if err != nil {
		h.fail(ctx, w, "activate template failed", err, "club_id", clubID, "template_id", templateID)
		return
	}

	h.logger.InfoContext(ctx, "template activated", "club_id", clubID, "template_id", templateID, "competition_id", item.ID)
	writeJSON(ctx, w, http.StatusCreated, competitionToDTO(item))
}

func (h *Handler) OpenCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenCompetition")
	defer span.End()

	principal, _ := principalFromContext(ctx)
	competitionID := r.PathValue("competitionId")

	item, err := h.competitionService.Open(ctx, principal, competitionID)
	if err != nil {
		h.fail(ctx, w, "open competition failed", err, "competition_id", competitionID)
		return
	}

	h.logger.InfoContext(ctx, "competition opened", "competition_id", item.ID, "club_id", item.ClubID)
	writeJSON(ctx, w, http.StatusOK, competitionToDTO(item))
}

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetition")
	defer span.End()

	competitionID := r.PathValue("competitionId")
	detail, err := h.competitionService.Get(ctx, competitionID)
	if err != nil {
		h.fail(ctx, w, "get competition failed", err, "competition_id", competitionID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, competitionDetailToDTO(detail))
}

func (h *Handler) JoinCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinCompetition")
	defer span.End()

	competitionID := r.PathValue("competitionId")

	var req joinCompetitionRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.entryService.Join(ctx, usecase.JoinCompetitionInput{
		CompetitionID: competitionID,
		Email:         req.Email,
		Name:          req.Name,
	})
	if err != nil {
		h.fail(ctx, w, "join competition failed", err, "competition_id", competitionID)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, joinToDTO(result))
}

func competitionsToDTO(items []competition.Competition) []competitionDTO {
	out := make([]competitionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, competitionToDTO(item))
	}
	return out
}
