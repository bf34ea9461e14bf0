package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/template"
	"github.com/riskibarqy/gamemaster/internal/usecase"
)

type createTemplateRequest struct {
	Name              string          `json:"name" validate:"required,min=2,max=120"`
	GameType          string          `json:"gameType" validate:"required,max=60"`
	Sport             string          `json:"sport" validate:"required,min=2,max=60"`
	Status            string          `json:"status"`
	ActivationOpenAt  *time.Time      `json:"activationOpenAt"`
	ActivationCloseAt *time.Time      `json:"activationCloseAt"`
	JoinOpenAt        *time.Time      `json:"joinOpenAt"`
	JoinCloseAt       *time.Time      `json:"joinCloseAt"`
	StartAt           *time.Time      `json:"startAt" validate:"required"`
	RulesJSON         json.RawMessage `json:"rulesJson"`
}

func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTemplate")
	defer span.End()

	principal, _ := principalFromContext(ctx)

	var req createTemplateRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.templateService.Create(ctx, principal, usecase.CreateTemplateInput{
		Name:              req.Name,
		GameType:          req.GameType,
		Sport:             req.Sport,
		Status:            req.Status,
		ActivationOpenAt:  req.ActivationOpenAt,
		ActivationCloseAt: req.ActivationCloseAt,
		JoinOpenAt:        req.JoinOpenAt,
		JoinCloseAt:       req.JoinCloseAt,
		StartAt:           *req.StartAt,
		RulesJSON:         req.RulesJSON,
	})
	if err != nil {
		h.fail(ctx, w, "create template failed", err, "user_id", principal.UserID)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, templateToDTO(item))
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTemplates")
	defer span.End()

	upcoming, err := parseBoolQuery(r, "upcoming")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.templateService.List(ctx, usecase.ListTemplatesInput{
		Status:   r.URL.Query().Get("status"),
		Upcoming: upcoming,
	})
	if err != nil {
		h.fail(ctx, w, "list templates failed", err)
		return
	}

	writeItems(ctx, w, templatesToDTO(items))
}

func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTemplate")
	defer span.End()

	templateID := r.PathValue("templateId")
	item, err := h.templateService.Get(ctx, templateID)
	if err != nil {
		h.fail(ctx, w, "get template failed", err, "template_id", templateID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, templateToDTO(item))
}

func templatesToDTO(items []template.Template) []templateDTO {
	out := make([]templateDTO, 0, len(items))
	for _, item := range items {
		out = append(out, templateToDTO(item))
	}
	return out
}
