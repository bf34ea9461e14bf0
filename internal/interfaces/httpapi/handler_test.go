package httpapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/domain/fixture"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	"github.com/riskibarqy/gamemaster/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/gamemaster/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/gamemaster/internal/platform/id"
	"github.com/riskibarqy/gamemaster/internal/platform/logging"
	"github.com/riskibarqy/gamemaster/internal/usecase"
)

const (
	siteAdminToken  = "site-admin-token"
	cavanAdminToken = "cavan-admin-token"
	playerToken     = "player-token"
)

var testPrincipals = map[string]user.Principal{
	siteAdminToken:  {UserID: "user-site-admin", Email: "root@gamemaster.test", Role: user.RoleSiteAdmin},
	cavanAdminToken: {UserID: "user-cavan-admin", Email: "admin@cavan.test", Role: user.RoleClubAdmin},
	playerToken:     {UserID: "user-player", Email: "player@cavan.test", Role: user.RolePlayer},
}

type staticVerifier map[string]user.Principal

func (v staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v[token]
	if !ok {
		return user.Principal{}, usecase.ErrInvalidToken
	}
	return principal, nil
}

// seededPasswordHash marks the fixture accounts as registered. It is not a
// valid bcrypt hash, so nobody can log in as them.
const seededPasswordHash = "seeded"

type testServer struct {
	store   *memory.Store
	handler http.Handler
}

func newTestServer(t *testing.T, verifier TokenVerifier, cfg RouterConfig) *testServer {
	t.Helper()

	now := time.Now().UTC()
	store := memory.NewStore()
	memory.Seed(store, now)

	users := memory.NewUserRepository(store)
	clubs := memory.NewClubRepository(store)
	templates := memory.NewTemplateRepository(store)
	competitions := memory.NewCompetitionRepository(store)
	fixtures := memory.NewFixtureRepository(store)

	ctx := context.Background()
	for _, p := range testPrincipals {
		if err := users.Create(ctx, user.User{ID: p.UserID, Email: p.Email, PasswordHash: seededPasswordHash, Role: p.Role, CreatedAt: now, UpdatedAt: now}); err != nil {
			t.Fatalf("seed user %s: %v", p.UserID, err)
		}
	}
	if err := clubs.UpsertMember(ctx, club.Member{ClubID: memory.ClubIDCavan, UserID: "user-cavan-admin", Role: club.MemberRoleClubAdmin, CreatedAt: now}); err != nil {
		t.Fatalf("seed club admin: %v", err)
	}

	ids := idgen.NewUUIDGenerator()
	logger := logging.NewNop()
	recorder, err := usecase.NewAuditRecorder(memory.NewAuditRepository(store), ids, logger, usecase.AuditConfig{})
	if err != nil {
		t.Fatalf("new audit recorder: %v", err)
	}
	policy := usecase.NewAccessPolicy(clubs, recorder)

	tokens, err := jwtauth.NewProvider(jwtauth.Config{Secret: "test-secret", Issuer: "gamemaster-test", TTL: time.Hour})
	if err != nil {
		t.Fatalf("new jwt provider: %v", err)
	}
	if verifier == nil {
		verifier = tokens
	}

	handler := NewHandler(
		usecase.NewAuthService(users, clubs, tokens, jwtauth.NewBcryptHasher(4), ids),
		usecase.NewClubService(clubs, users, policy, recorder, ids),
		usecase.NewTemplateService(templates, policy, ids),
		usecase.NewCompetitionService(competitions, clubs, templates, fixtures, policy, recorder, ids),
		usecase.NewEntryService(competitions, templates, memory.NewEntryRepository(store), ids),
		usecase.NewPickService(users, fixtures, memory.NewPickRepository(store), ids),
		BuildInfo{Name: "gamemaster", Version: "test"},
		logger,
	)

	return &testServer{store: store, handler: NewRouter(handler, verifier, logger, cfg)}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := sonic.Marshal(v)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "203.0.113.10:5000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, body map[string]any, status int, message string) {
	t.Helper()
	expectStatus(t, rec, status)
	if got, _ := body["error"].(string); got != message {
		t.Fatalf("expected error %q, got %q", message, got)
	}
}

func rfc3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// publishTemplate creates a PUBLISHED template whose activation and join
// windows are open right now.
func (s *testServer) publishTemplate(t *testing.T) string {
	t.Helper()
	now := time.Now().UTC()
	rec, body := s.do(t, http.MethodPost, "/templates", siteAdminToken, map[string]any{
		"name":              "Last Man Standing 2026",
		"gameType":          "LMS",
		"sport":             "GAA",
		"status":            "PUBLISHED",
		"activationOpenAt":  rfc3339(now.Add(-time.Hour)),
		"activationCloseAt": rfc3339(now.Add(24 * time.Hour)),
		"joinOpenAt":        rfc3339(now.Add(-time.Hour)),
		"joinCloseAt":       rfc3339(now.Add(48 * time.Hour)),
		"startAt":           rfc3339(now.Add(72 * time.Hour)),
		"rulesJson":         map[string]any{"lives": 1},
	})
	expectStatus(t, rec, http.StatusCreated)
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("expected template id in %v", body)
	}
	return id
}

func (s *testServer) activate(t *testing.T, templateID string) string {
	t.Helper()
	rec, body := s.do(t, http.MethodPost, "/clubs/"+memory.ClubIDCavan+"/activate-template/"+templateID, cavanAdminToken, nil)
	expectStatus(t, rec, http.StatusCreated)
	id, _ := body["id"].(string)
	return id
}

func TestRouter_SystemEndpoints(t *testing.T) {
	srv := newTestServer(t, staticVerifier(testPrincipals), RouterConfig{})

	rec, body := srv.do(t, http.MethodGet, "/healthz", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if ok, _ := body["ok"].(bool); !ok {
		t.Fatalf("expected ok=true, got %v", body)
	}

	rec, body = srv.do(t, http.MethodGet, "/version", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if body["version"] != "test" {
		t.Fatalf("unexpected version body: %v", body)
	}

	rec, body = srv.do(t, http.MethodGet, "/dbz", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if clubs, _ := body["clubs"].(float64); int(clubs) != len(memory.SeedClubs()) {
		t.Fatalf("unexpected club count: %v", body)
	}

	rec, _ = srv.do(t, http.MethodGet, "/openapi.yaml", "", nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestRouter_SwaggerEnabled(t *testing.T) {
	srv := newTestServer(t, staticVerifier(testPrincipals), RouterConfig{SwaggerEnabled: true})

	rec, _ := srv.do(t, http.MethodGet, "/openapi.yaml", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "/competitions/{competitionId}/open") {
		t.Fatalf("openapi document is missing the open route")
	}

	rec, _ = srv.do(t, http.MethodGet, "/docs", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "<title>gamemaster Docs</title>") {
		t.Fatalf("unexpected swagger page: %s", rec.Body.String())
	}
}

func TestRouter_TemplateActivationOpenJoinAndPick(t *testing.T) {
	srv := newTestServer(t, staticVerifier(testPrincipals), RouterConfig{})

	templateID := srv.publishTemplate(t)

	rec, body := srv.do(t, http.MethodPost, "/clubs/"+memory.ClubIDCavan+"/activate-template/"+templateID, cavanAdminToken, map[string]any{
		"name":     "Cavan LMS",
		"currency": "gbp",
	})
	expectStatus(t, rec, http.StatusCreated)
	competitionID, _ := body["id"].(string)
	if body["status"] != "DRAFT" || body["sport"] != "GAA" || body["currency"] != "GBP" || body["name"] != "Cavan LMS" {
		t.Fatalf("unexpected competition: %v", body)
	}
	if body["templateId"] != templateID || body["clubId"] != memory.ClubIDCavan {
		t.Fatalf("unexpected references: %v", body)
	}

	rec, body = srv.do(t, http.MethodPost, "/competitions/"+competitionID+"/open", cavanAdminToken, nil)
	expectStatus(t, rec, http.StatusOK)
	if body["status"] != "OPEN" {
		t.Fatalf("expected OPEN, got %v", body["status"])
	}

	rec, body = srv.do(t, http.MethodPost, "/competitions/"+competitionID+"/open", cavanAdminToken, nil)
	expectError(t, rec, body, http.StatusBadRequest, "Only DRAFT competitions can be opened")

	rec, body = srv.do(t, http.MethodPost, "/competitions/"+competitionID+"/entries", "", map[string]any{"email": " Fan@Example.com ", "name": "Fan"})
	expectStatus(t, rec, http.StatusCreated)
	joinedUser, _ := body["user"].(map[string]any)
	if joinedUser["email"] != "fan@example.com" || joinedUser["role"] != "PLAYER" {
		t.Fatalf("unexpected joined user: %v", body)
	}

	rec, body = srv.do(t, http.MethodPost, "/competitions/"+competitionID+"/entries", "", map[string]any{"email": "fan@example.com"})
	expectError(t, rec, body, http.StatusConflict, "You have already joined this competition")

	deadline := time.Now().UTC().Add(2 * time.Hour)
	srv.store.PutRound(fixture.Round{ID: "round-1", CompetitionID: competitionID, Number: 1, Status: fixture.RoundStatusUpcoming, PickDeadlineAt: &deadline})
	srv.store.PutFixture(fixture.Fixture{ID: "fixture-1", RoundID: "round-1", HomeTeamID: "cavan", AwayTeamID: "monaghan", Status: "SCHEDULED"})

	rec, body = srv.do(t, http.MethodPost, "/picks", "", map[string]any{"email": "fan@example.com", "fixtureId": "fixture-1", "teamPicked": "cavan"})
	expectStatus(t, rec, http.StatusOK)
	if body["teamPicked"] != "cavan" || body["competitionId"] != competitionID {
		t.Fatalf("unexpected pick: %v", body)
	}

	rec, body = srv.do(t, http.MethodPost, "/picks", "", map[string]any{"email": "fan@example.com", "fixtureId": "fixture-1", "teamPicked": "dublin"})
	expectError(t, rec, body, http.StatusBadRequest, "Invalid team selection")

	rec, body = srv.do(t, http.MethodGet, "/competitions/"+competitionID, "", nil)
	expectStatus(t, rec, http.StatusOK)
	clubBody, _ := body["club"].(map[string]any)
	if clubBody["slug"] != "cavan-gaa" {
		t.Fatalf("unexpected club in detail: %v", body["club"])
	}
	templateBody, _ := body["template"].(map[string]any)
	if templateBody["gameType"] != "LMS" {
		t.Fatalf("unexpected template in detail: %v", body["template"])
	}
	rounds, _ := body["rounds"].([]any)
	if len(rounds) != 1 {
		t.Fatalf("expected one round, got %v", body["rounds"])
	}
	first, _ := rounds[0].(map[string]any)
	if first["name"] != "Round 1" {
		t.Fatalf("unexpected round: %v", rounds[0])
	}
	if roundFixtures, ok := first["fixtures"].([]any); !ok || len(roundFixtures) != 0 {
		t.Fatalf("expected empty fixtures list, got %v", first["fixtures"])
	}

	rec, body = srv.do(t, http.MethodGet, "/clubs/"+memory.ClubIDCavan+"/competitions?status=OPEN", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if items, _ := body["items"].([]any); len(items) != 1 {
		t.Fatalf("expected one open competition, got %v", body)
	}
}

func TestRouter_PickAfterDeadline(t *testing.T) {
	srv := newTestServer(t, staticVerifier(testPrincipals), RouterConfig{})

	deadline := time.Now().UTC().Add(-time.Minute)
	srv.store.PutRound(fixture.Round{ID: "round-9", CompetitionID: "comp-x", Number: 9, Status: fixture.RoundStatusUpcoming, PickDeadlineAt: &deadline})
	srv.store.PutFixture(fixture.Fixture{ID: "fixture-9", RoundID: "round-9", HomeTeamID: "cavan", AwayTeamID: "monaghan"})

	rec, body := srv.do(t, http.MethodPost, "/picks", "", map[string]any{"email": "player@cavan.test", "fixtureId": "fixture-9", "teamPicked": "cavan"})
	expectError(t, rec, body, http.StatusBadRequest, "Pick deadline has passed")

	rec, body = srv.do(t, http.MethodPost, "/picks", "", map[string]any{"email": "player@cavan.test"})
	expectError(t, rec, body, http.StatusBadRequest, "email, fixtureId, and teamPicked are required")
}

func TestRouter_AuthorizationFailures(t *testing.T) {
	srv := newTestServer(t, staticVerifier(testPrincipals), RouterConfig{})
	templateID := srv.publishTemplate(t)

	tests := []struct {
		name    string
		method  string
		path    string
		token   string
		body    any
		status  int
		message string
	}{
		{
			name:    "activate without token",
			method:  http.MethodPost,
			path:    "/clubs/" + memory.ClubIDCavan + "/activate-template/" + templateID,
			status:  http.StatusUnauthorized,
			message: "Missing authorization token",
		},
		{
			name:    "activate with unknown token",
			method:  http.MethodPost,
			path:    "/clubs/" + memory.ClubIDCavan + "/activate-template/" + templateID,
			token:   "forged",
			status:  http.StatusUnauthorized,
			message: "Invalid or expired token",
		},
		{
			name:    "player activates",
			method:  http.MethodPost,
			path:    "/clubs/" + memory.ClubIDCavan + "/activate-template/" + templateID,
			token:   playerToken,
			status:  http.StatusForbidden,
			message: "Forbidden: not a club admin for this club",
		},
		{
			name:    "club admin of another club",
			method:  http.MethodPost,
			path:    "/clubs/" + memory.ClubIDMonaghan + "/activate-template/" + templateID,
			token:   cavanAdminToken,
			status:  http.StatusForbidden,
			message: "Forbidden: not a club admin for this club",
		},
		{
			name:    "club admin creates template",
			method:  http.MethodPost,
			path:    "/templates",
			token:   cavanAdminToken,
			body:    map[string]any{"name": "Rogue", "gameType": "LMS", "sport": "GAA", "startAt": rfc3339(time.Now().Add(time.Hour))},
			status:  http.StatusForbidden,
			message: "Site admin access required",
		},
		{
			name:    "club admin creates club",
			method:  http.MethodPost,
			path:    "/clubs",
			token:   cavanAdminToken,
			body:    map[string]any{"name": "Dublin GAA"},
			status:  http.StatusForbidden,
			message: "Site admin access required",
		},
		{
			name:    "me without token",
			method:  http.MethodGet,
			path:    "/me",
			status:  http.StatusUnauthorized,
			message: "Missing authorization token",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := srv.do(t, tc.method, tc.path, tc.token, tc.body)
			expectError(t, rec, body, tc.status, tc.message)
		})
	}
}

func TestRouter_ActivateUnpublishedAndMissing(t *testing.T) {
	srv := newTestServer(t, staticVerifier(testPrincipals), RouterConfig{})

	rec, body := srv.do(t, http.MethodPost, "/templates", siteAdminToken, map[string]any{
		"name": "Draft Template", "gameType": "LMS", "sport": "GAA", "startAt": rfc3339(time.Now().Add(time.Hour)),
	})
	expectStatus(t, rec, http.StatusCreated)
	if body["status"] != "DRAFT" {
		t.Fatalf("expected DRAFT default, got %v", body["status"])
	}
	draftID, _ := body["id"].(string)

	rec, body = srv.do(t, http.MethodPost, "/clubs/"+memory.ClubIDCavan+"/activate-template/"+draftID, cavanAdminToken, nil)
	expectError(t, rec, body, http.StatusBadRequest, "Template is not published")

	rec, body = srv.do(t, http.MethodPost, "/clubs/"+memory.ClubIDCavan+"/activate-template/missing", cavanAdminToken, nil)
	expectError(t, rec, body, http.StatusNotFound, "Template not found")

	rec, body = srv.do(t, http.MethodGet, "/competitions/missing", "", nil)
	expectError(t, rec, body, http.StatusNotFound, "Competition not found")
}

func TestRouter_ValidationErrorsCarryIssues(t *testing.T) {
	srv := newTestServer(t, staticVerifier(testPrincipals), RouterConfig{})

	rec, body := srv.do(t, http.MethodPost, "/clubs", siteAdminToken, map[string]any{"name": "x"})
	expectError(t, rec, body, http.StatusBadRequest, "Validation failed")
	issues, _ := body["issues"].([]any)
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %v", body["issues"])
	}
	if issue, _ := issues[0].(map[string]any); issue["field"] != "name" {
		t.Fatalf("unexpected issue: %v", issues[0])
	}

	rec, body = srv.do(t, http.MethodPost, "/clubs", siteAdminToken, `{"name":"Dublin GAA","colour":"blue"}`)
	expectError(t, rec, body, http.StatusBadRequest, "Invalid JSON body")

	rec, body = srv.do(t, http.MethodPost, "/clubs", siteAdminToken, map[string]any{"name": "Dublin GAA", "slug": "Not A Slug"})
	expectError(t, rec, body, http.StatusBadRequest, "Validation failed")

	rec, body = srv.do(t, http.MethodPost, "/clubs", siteAdminToken, map[string]any{"name": "Cavan Again", "slug": "cavan-gaa"})
	expectError(t, rec, body, http.StatusConflict, "Club slug is already taken")

	rec, _ = srv.do(t, http.MethodGet, "/templates?upcoming=maybe", "", nil)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestRouter_ClubLifecycle(t *testing.T) {
	srv := newTestServer(t, staticVerifier(testPrincipals), RouterConfig{})

	rec, body := srv.do(t, http.MethodPost, "/clubs", siteAdminToken, map[string]any{
		"name":         "Dublin GAA",
		"brandingJson": map[string]any{"primary": "#0b5"},
	})
	expectStatus(t, rec, http.StatusCreated)
	if body["slug"] != "dublin-gaa" {
		t.Fatalf("unexpected slug: %v", body["slug"])
	}
	clubID, _ := body["id"].(string)

	rec, body = srv.do(t, http.MethodGet, "/clubs/by-slug/DUBLIN-GAA", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if body["id"] != clubID {
		t.Fatalf("unexpected club: %v", body)
	}

	rec, body = srv.do(t, http.MethodGet, "/clubs", "", nil)
	expectStatus(t, rec, http.StatusOK)
	items, _ := body["items"].([]any)
	if len(items) != len(memory.SeedClubs())+1 {
		t.Fatalf("unexpected clubs: %v", body)
	}
	if first, _ := items[0].(map[string]any); first["id"] != clubID {
		t.Fatalf("expected newest club first, got %v", items[0])
	}

	rec, body = srv.do(t, http.MethodPost, "/admin/clubs/"+clubID+"/assign-club-admin", siteAdminToken, map[string]any{"email": "player@cavan.test"})
	expectStatus(t, rec, http.StatusOK)
	if body["role"] != "CLUB_ADMIN" || body["userId"] != "user-player" {
		t.Fatalf("unexpected membership: %v", body)
	}

	rec, body = srv.do(t, http.MethodPost, "/clubs/"+clubID+"/competitions", playerToken, map[string]any{
		"name": "Dublin Predictor", "sport": "GAA", "entryFeeCents": 500,
	})
	expectStatus(t, rec, http.StatusCreated)
	if body["templateId"] != nil || body["status"] != "DRAFT" || body["currency"] != "EUR" {
		t.Fatalf("unexpected direct competition: %v", body)
	}
	competitionID, _ := body["id"].(string)

	rec, _ = srv.do(t, http.MethodPost, "/competitions/"+competitionID+"/open", playerToken, nil)
	expectStatus(t, rec, http.StatusOK)

	rec, body = srv.do(t, http.MethodGet, "/competitions/"+competitionID, "", nil)
	expectStatus(t, rec, http.StatusOK)
	if body["template"] != nil {
		t.Fatalf("expected null template, got %v", body["template"])
	}

	rec, body = srv.do(t, http.MethodGet, "/clubs/by-slug/nowhere", "", nil)
	expectError(t, rec, body, http.StatusNotFound, "Club not found")
}

func TestRouter_RegisterLoginAndMe(t *testing.T) {
	srv := newTestServer(t, nil, RouterConfig{})

	rec, body := srv.do(t, http.MethodPost, "/auth/register", "", map[string]any{"email": "New@Example.com", "password": "correct-horse", "name": "New"})
	expectStatus(t, rec, http.StatusCreated)
	if token, _ := body["token"].(string); token == "" {
		t.Fatalf("expected token, got %v", body)
	}

	rec, body = srv.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "new@example.com", "password": "wrong-horse"})
	expectError(t, rec, body, http.StatusUnauthorized, "Invalid email or password")

	rec, body = srv.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "new@example.com", "password": "correct-horse"})
	expectStatus(t, rec, http.StatusOK)
	token, _ := body["token"].(string)

	rec, body = srv.do(t, http.MethodGet, "/me", token, nil)
	expectStatus(t, rec, http.StatusOK)
	if body["email"] != "new@example.com" || body["role"] != "PLAYER" {
		t.Fatalf("unexpected profile: %v", body)
	}

	rec, body = srv.do(t, http.MethodGet, "/me", token+"tampered", nil)
	expectError(t, rec, body, http.StatusUnauthorized, "Invalid or expired token")
}

func TestRouter_AuthRateLimit(t *testing.T) {
	srv := newTestServer(t, nil, RouterConfig{AuthLimiter: NewClientRateLimiter(0.001, 2)})

	for i := 0; i < 2; i++ {
		rec, _ := srv.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "nobody@example.com", "password": "whatever-pass"})
		expectStatus(t, rec, http.StatusUnauthorized)
	}

	rec, body := srv.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "nobody@example.com", "password": "whatever-pass"})
	expectError(t, rec, body, http.StatusTooManyRequests, "Too many requests, try again shortly")
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}

	rec, _ = srv.do(t, http.MethodGet, "/clubs", "", nil)
	expectStatus(t, rec, http.StatusOK)
}

func TestRouter_RecoversPanics(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
	handler := recoverPanic(logging.NewNop(), mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), internalErrorMessage) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
