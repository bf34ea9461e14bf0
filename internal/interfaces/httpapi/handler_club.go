package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/usecase"
)

type createClubRequest struct {
	Name         string          `json:"name" validate:"required,min=2,max=120"`
	Slug         string          `json:"slug" validate:"omitempty,max=80"`
	BrandingJSON json.RawMessage `json:"brandingJson"`
}

type assignClubAdminRequest struct {
	UserID string `json:"userId" validate:"required_without=Email"`
	Email  string `json:"email" validate:"omitempty,email"`
}

func (h *Handler) CreateClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateClub")
	defer span.End()

	principal, _ := principalFromContext(ctx)

	var req createClubRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.clubService.Create(ctx, principal, usecase.CreateClubInput{
		Name:         req.Name,
		Slug:         req.Slug,
		BrandingJSON: req.BrandingJSON,
	})
	if err != nil {
		h.fail(ctx, w, "create club failed", err, "user_id", principal.UserID)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, clubToDTO(item))
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	items, err := h.clubService.List(ctx)
	if err != nil {
		h.fail(ctx, w, "list clubs failed", err)
		return
	}

	out := make([]clubDTO, 0, len(items))
	for _, item := range items {
		out = append(out, clubSummaryToDTO(item))
	}
	writeItems(ctx, w, out)
}

func (h *Handler) GetClubBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubBySlug")
	defer span.End()

	slug := r.PathValue("slug")
	item, err := h.clubService.GetBySlug(ctx, slug)
	if err != nil {
		h.fail(ctx, w, "get club by slug failed", err, "slug", slug)
		return
	}

	writeJSON(ctx, w, http.StatusOK, clubSummaryToDTO(item))
}

func (h *Handler) AssignClubAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignClubAdmin")
	defer span.End()

	principal, _ := principalFromContext(ctx)
	clubID := r.PathValue("clubId")

	var req assignClubAdminRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	member, err := h.clubService.AssignClubAdmin(ctx, principal, usecase.AssignClubAdminInput{
		ClubID: clubID,
		UserID: req.UserID,
		Email:  req.Email,
	})
	if err != nil {
		h.fail(ctx, w, "assign club admin failed", err, "club_id", clubID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, memberToDTO(member))
}

func memberToDTO(m club.Member) clubMemberDTO {
	return clubMemberDTO{ClubID: m.ClubID, UserID: m.UserID, Role: string(m.Role)}
}
