package usecase

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/domain/competition"
	"github.com/riskibarqy/gamemaster/internal/domain/fixture"
	"github.com/riskibarqy/gamemaster/internal/domain/pick"
	"github.com/riskibarqy/gamemaster/internal/domain/template"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	"github.com/riskibarqy/gamemaster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/gamemaster/internal/platform/logging"
)

type sequenceIDs struct {
	prefix string
	n      atomic.Int64
}

func (g *sequenceIDs) NewID() (string, error) {
	return g.prefix + "-" + strconv.FormatInt(g.n.Add(1), 10), nil
}

var (
	siteAdmin  = user.Principal{UserID: "user-site-admin", Email: "root@gamemaster.test", Role: user.RoleSiteAdmin}
	cavanAdmin = user.Principal{UserID: "user-cavan-admin", Email: "admin@cavan.test", Role: user.RoleClubAdmin}
	player     = user.Principal{UserID: "user-player", Email: "player@cavan.test", Role: user.RolePlayer}
)

// recordingEntryRepo counts successful joins per competition.
type recordingEntryRepo struct {
	competition.EntryRepository

	mu     sync.Mutex
	joined map[string]int
}

func (r *recordingEntryRepo) Join(ctx context.Context, params competition.JoinParams) (competition.JoinResult, error) {
	result, err := r.EntryRepository.Join(ctx, params)
	if err == nil {
		r.mu.Lock()
		if r.joined == nil {
			r.joined = make(map[string]int)
		}
		r.joined[params.CompetitionID]++
		r.mu.Unlock()
	}
	return result, err
}

func (r *recordingEntryRepo) count(competitionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.joined[competitionID]
}

// recordingPickRepo tracks the distinct (user, fixture) picks stored.
type recordingPickRepo struct {
	pick.Repository

	mu     sync.Mutex
	stored map[string]struct{}
}

func (r *recordingPickRepo) Upsert(ctx context.Context, p pick.Pick) (pick.Pick, error) {
	stored, err := r.Repository.Upsert(ctx, p)
	if err == nil {
		r.mu.Lock()
		if r.stored == nil {
			r.stored = make(map[string]struct{})
		}
		r.stored[stored.UserID+"/"+stored.FixtureID] = struct{}{}
		r.mu.Unlock()
	}
	return stored, err
}

func (r *recordingPickRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stored)
}

// testEnv wires every service over one in-memory store with a fixed clock.
type testEnv struct {
	now   time.Time
	store *memory.Store
	seq   int

	users        *memory.UserRepository
	clubs        *memory.ClubRepository
	templates    *memory.TemplateRepository
	competitions *memory.CompetitionRepository
	entries      *recordingEntryRepo
	fixtures     *memory.FixtureRepository
	picks        *recordingPickRepo

	policy         *AccessPolicy
	clubSvc        *ClubService
	templateSvc    *TemplateService
	competitionSvc *CompetitionService
	entrySvc       *EntryService
	pickSvc        *PickService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	memory.Seed(store, now)

	env := &testEnv{
		now:          now,
		store:        store,
		users:        memory.NewUserRepository(store),
		clubs:        memory.NewClubRepository(store),
		templates:    memory.NewTemplateRepository(store),
		competitions: memory.NewCompetitionRepository(store),
		entries:      &recordingEntryRepo{EntryRepository: memory.NewEntryRepository(store)},
		fixtures:     memory.NewFixtureRepository(store),
		picks:        &recordingPickRepo{Repository: memory.NewPickRepository(store)},
	}

	recorder, err := NewAuditRecorder(memory.NewAuditRepository(store), &sequenceIDs{prefix: "audit"}, logging.NewNop(), AuditConfig{})
	if err != nil {
		t.Fatalf("new audit recorder: %v", err)
	}

	ids := &sequenceIDs{prefix: "id"}
	env.policy = NewAccessPolicy(env.clubs, recorder)
	env.clubSvc = NewClubService(env.clubs, env.users, env.policy, recorder, ids)
	env.templateSvc = NewTemplateService(env.templates, env.policy, ids)
	env.competitionSvc = NewCompetitionService(env.competitions, env.clubs, env.templates, env.fixtures, env.policy, recorder, ids)
	env.entrySvc = NewEntryService(env.competitions, env.templates, env.entries, ids)
	env.pickSvc = NewPickService(env.users, env.fixtures, env.picks, ids)

	clock := func() time.Time { return env.now }
	env.clubSvc.now = clock
	env.templateSvc.now = clock
	env.competitionSvc.now = clock
	env.entrySvc.now = clock
	env.pickSvc.now = clock

	ctx := context.Background()
	for _, p := range []user.Principal{siteAdmin, cavanAdmin, player} {
		if err := env.users.Create(ctx, user.User{ID: p.UserID, Email: p.Email, PasswordHash: "hashed:seeded-password", Role: p.Role, CreatedAt: now, UpdatedAt: now}); err != nil {
			t.Fatalf("seed user %s: %v", p.UserID, err)
		}
	}
	if err := env.clubs.UpsertMember(ctx, club.Member{ClubID: memory.ClubIDCavan, UserID: cavanAdmin.UserID, Role: club.MemberRoleClubAdmin, CreatedAt: now}); err != nil {
		t.Fatalf("seed club admin: %v", err)
	}
	if err := env.clubs.UpsertMember(ctx, club.Member{ClubID: memory.ClubIDCavan, UserID: player.UserID, Role: club.MemberRolePlayer, CreatedAt: now}); err != nil {
		t.Fatalf("seed player membership: %v", err)
	}

	return env
}

func (e *testEnv) at(d time.Duration) *time.Time {
	v := e.now.Add(d)
	return &v
}

// addTemplate stores a template directly, bypassing TemplateService.
func (e *testEnv) addTemplate(t *testing.T, tpl template.Template) template.Template {
	t.Helper()
	if tpl.ID == "" {
		e.seq++
		tpl.ID = "tpl-" + strconv.Itoa(e.seq)
	}
	if tpl.Name == "" {
		tpl.Name = "Last Man Standing"
	}
	if tpl.GameType == "" {
		tpl.GameType = "LMS"
	}
	if tpl.Sport == "" {
		tpl.Sport = "GAA"
	}
	if tpl.StartAt.IsZero() {
		tpl.StartAt = e.now.Add(14 * 24 * time.Hour)
	}
	if err := e.templates.Create(context.Background(), tpl); err != nil {
		t.Fatalf("create template: %v", err)
	}
	return tpl
}

func (e *testEnv) addCompetition(t *testing.T, c competition.Competition) competition.Competition {
	t.Helper()
	if c.ClubID == "" {
		c.ClubID = memory.ClubIDCavan
	}
	if c.Name == "" {
		c.Name = "Cavan Summer LMS"
	}
	if c.Status == "" {
		c.Status = competition.StatusDraft
	}
	if c.Currency == "" {
		c.Currency = competition.DefaultCurrency
	}
	if err := e.competitions.Create(context.Background(), c); err != nil {
		t.Fatalf("create competition: %v", err)
	}
	return c
}

// addFixture stores a round with one fixture between home and away.
func (e *testEnv) addFixture(competitionID, fixtureID string, status fixture.RoundStatus, deadline *time.Time) {
	roundID := "round-" + fixtureID
	e.store.PutRound(fixture.Round{
		ID:             roundID,
		CompetitionID:  competitionID,
		Number:         1,
		Status:         status,
		PickDeadlineAt: deadline,
	})
	e.store.PutFixture(fixture.Fixture{
		ID:         fixtureID,
		RoundID:    roundID,
		HomeTeamID: "team-cavan",
		AwayTeamID: "team-monaghan",
		Status:     "SCHEDULED",
	})
}
