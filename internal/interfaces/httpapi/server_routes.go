package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /version", handler.Version)
	mux.HandleFunc("GET /dbz", handler.DBZ)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, limiter *ClientRateLimiter) {
	mux.Handle("POST /auth/register", RateLimit(limiter, http.HandlerFunc(handler.Register)))
	mux.Handle("POST /auth/login", RateLimit(limiter, http.HandlerFunc(handler.Login)))
	mux.Handle("GET /me", RequireAuth(verifier, http.HandlerFunc(handler.Me)))
}

func registerClubRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /clubs", handler.ListClubs)
	mux.HandleFunc("GET /clubs/by-slug/{slug}", handler.GetClubBySlug)
	mux.HandleFunc("GET /clubs/{clubId}/competitions", handler.ListClubCompetitions)

	mux.Handle("POST /clubs", RequireAuth(verifier, http.HandlerFunc(handler.CreateClub)))
	mux.Handle("POST /clubs/{clubId}/competitions", RequireAuth(verifier, http.HandlerFunc(handler.CreateCompetition)))
	mux.Handle("POST /clubs/{clubId}/activate-template/{templateId}", RequireAuth(verifier, http.HandlerFunc(handler.ActivateTemplate)))
	mux.Handle("POST /admin/clubs/{clubId}/assign-club-admin", RequireAuth(verifier, http.HandlerFunc(handler.AssignClubAdmin)))
}

func registerTemplateRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /templates", handler.ListTemplates)
	mux.HandleFunc("GET /templates/{templateId}", handler.GetTemplate)
	mux.Handle("POST /templates", RequireAuth(verifier, http.HandlerFunc(handler.CreateTemplate)))
}

func registerCompetitionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /competitions/{competitionId}", handler.GetCompetition)
	mux.HandleFunc("POST /competitions/{competitionId}/entries", handler.JoinCompetition)
	mux.Handle("POST /competitions/{competitionId}/open", RequireAuth(verifier, http.HandlerFunc(handler.OpenCompetition)))
	mux.HandleFunc("POST /picks", handler.SubmitPick)
}
