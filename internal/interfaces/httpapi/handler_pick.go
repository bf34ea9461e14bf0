package httpapi

import (
	"net/http"

	"github.com/riskibarqy/gamemaster/internal/usecase"
)

// Field presence is checked by PickService so the error keeps its single
// combined message.
type submitPickRequest struct {
	Email      string `json:"email"`
	FixtureID  string `json:"fixtureId"`
	TeamPicked string `json:"teamPicked"`
}

func (h *Handler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPick")
	defer span.End()

	var req submitPickRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.pickService.Submit(ctx, usecase.SubmitPickInput{
		Email:      req.Email,
		FixtureID:  req.FixtureID,
		TeamPicked: req.TeamPicked,
	})
	if err != nil {
		h.fail(ctx, w, "submit pick failed", err, "fixture_id", req.FixtureID)
		return
	}

	writeJSON(ctx, w, http.StatusOK, pickToDTO(item))
}
