package httpapi

import "net/http"

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Version")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{
		"name":    h.build.Name,
		"version": h.build.Version,
	})
}

// DBZ checks the store with a cheap count query.
func (h *Handler) DBZ(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DBZ")
	defer span.End()

	count, err := h.clubService.Count(ctx)
	if err != nil {
		h.fail(ctx, w, "store round-trip failed", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"ok": true, "clubs": count})
}
