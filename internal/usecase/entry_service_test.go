package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/domain/competition"
	"github.com/riskibarqy/gamemaster/internal/domain/template"
	"github.com/riskibarqy/gamemaster/internal/infrastructure/repository/memory"
	competitionmock "github.com/riskibarqy/gamemaster/internal/mocks/domain/competition"
	templatemock "github.com/riskibarqy/gamemaster/internal/mocks/domain/template"
	"github.com/stretchr/testify/mock"
)

func TestEntryService_JoinCreatesPlayer(t *testing.T) {
	env := newTestEnv(t)
	tpl := env.addTemplate(t, template.Template{Status: template.StatusPublished, JoinCloseAt: env.at(time.Hour)})
	item := env.addCompetition(t, competition.Competition{ID: "comp-1", TemplateID: tpl.ID, Status: competition.StatusOpen})

	result, err := env.entrySvc.Join(context.Background(), JoinCompetitionInput{
		CompetitionID: item.ID,
		Email:         "  New.Player@Example.com ",
		Name:          "New Player",
	})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if !result.UserCreated || result.User.Email != "new.player@example.com" || result.User.Name != "New Player" {
		t.Fatalf("unexpected user: %+v created=%v", result.User, result.UserCreated)
	}
	if result.Entry.CompetitionID != item.ID || result.Entry.Status != competition.EntryStatusActive {
		t.Fatalf("unexpected entry: %+v", result.Entry)
	}

	member, exists, err := env.clubs.GetMember(context.Background(), memory.ClubIDCavan, result.User.ID)
	if err != nil || !exists || member.Role != club.MemberRolePlayer {
		t.Fatalf("expected PLAYER membership, got %+v exists=%v err=%v", member, exists, err)
	}
}

func TestEntryService_JoinWindowClosed(t *testing.T) {
	env := newTestEnv(t)
	tpl := env.addTemplate(t, template.Template{Status: template.StatusPublished, JoinCloseAt: env.at(-time.Hour)})
	item := env.addCompetition(t, competition.Competition{ID: "comp-1", TemplateID: tpl.ID, Status: competition.StatusOpen})

	_, err := env.entrySvc.Join(context.Background(), JoinCompetitionInput{CompetitionID: item.ID, Email: "late@example.com"})
	if !errors.Is(err, ErrJoinWindowClosed) {
		t.Fatalf("expected ErrJoinWindowClosed, got %v", err)
	}
	if got := env.entries.count(item.ID); got != 0 {
		t.Fatalf("expected no entries, got %d", got)
	}
}

func TestEntryService_JoinBeforeWindowOpens(t *testing.T) {
	env := newTestEnv(t)
	tpl := env.addTemplate(t, template.Template{Status: template.StatusPublished, JoinOpenAt: env.at(time.Hour)})
	item := env.addCompetition(t, competition.Competition{ID: "comp-1", TemplateID: tpl.ID, Status: competition.StatusOpen})

	_, err := env.entrySvc.Join(context.Background(), JoinCompetitionInput{CompetitionID: item.ID, Email: "early@example.com"})
	if !errors.Is(err, ErrJoinWindowClosed) {
		t.Fatalf("expected ErrJoinWindowClosed, got %v", err)
	}
}

func TestEntryService_JoinTwice(t *testing.T) {
	env := newTestEnv(t)
	item := env.addCompetition(t, competition.Competition{ID: "comp-1", Status: competition.StatusOpen})

	input := JoinCompetitionInput{CompetitionID: item.ID, Email: "twice@example.com"}
	if _, err := env.entrySvc.Join(context.Background(), input); err != nil {
		t.Fatalf("first join: %v", err)
	}

	input.Email = "TWICE@example.com"
	_, err := env.entrySvc.Join(context.Background(), input)
	if !errors.Is(err, ErrAlreadyJoined) || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}
	if err.Error() != "You have already joined this competition" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if got := env.entries.count(item.ID); got != 1 {
		t.Fatalf("expected one entry, got %d", got)
	}
}

func TestEntryService_JoinKeepsClubAdminRole(t *testing.T) {
	env := newTestEnv(t)
	item := env.addCompetition(t, competition.Competition{ID: "comp-1", Status: competition.StatusOpen})

	result, err := env.entrySvc.Join(context.Background(), JoinCompetitionInput{CompetitionID: item.ID, Email: cavanAdmin.Email})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if result.UserCreated || result.User.ID != cavanAdmin.UserID {
		t.Fatalf("expected existing user, got %+v", result.User)
	}

	member, _, _ := env.clubs.GetMember(context.Background(), memory.ClubIDCavan, cavanAdmin.UserID)
	if member.Role != club.MemberRoleClubAdmin {
		t.Fatalf("expected role to stay CLUB_ADMIN, got %s", member.Role)
	}
}

func TestEntryService_JoinRejections(t *testing.T) {
	env := newTestEnv(t)
	draft := env.addCompetition(t, competition.Competition{ID: "comp-draft"})
	running := env.addCompetition(t, competition.Competition{ID: "comp-running", Status: competition.StatusRunning})

	tests := []struct {
		name    string
		input   JoinCompetitionInput
		wantErr error
	}{
		{name: "draft", input: JoinCompetitionInput{CompetitionID: draft.ID, Email: "a@example.com"}, wantErr: ErrCompetitionNotOpen},
		{name: "running", input: JoinCompetitionInput{CompetitionID: running.ID, Email: "a@example.com"}, wantErr: ErrCompetitionNotOpen},
		{name: "missing competition", input: JoinCompetitionInput{CompetitionID: "nope", Email: "a@example.com"}, wantErr: ErrCompetitionNotFound},
		{name: "missing email", input: JoinCompetitionInput{CompetitionID: draft.ID, Email: "   "}, wantErr: ErrInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.entrySvc.Join(context.Background(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestEntryService_ConcurrentJoinsSameUser(t *testing.T) {
	env := newTestEnv(t)
	item := env.addCompetition(t, competition.Competition{ID: "comp-1", Status: competition.StatusOpen})

	const callers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		joined  int
		already int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.entrySvc.Join(context.Background(), JoinCompetitionInput{CompetitionID: item.ID, Email: "racer@example.com"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				joined++
			case errors.Is(err, ErrAlreadyJoined):
				already++
			default:
				t.Errorf("unexpected join error: %v", err)
			}
		}()
	}
	wg.Wait()

	if joined != 1 || already != callers-1 {
		t.Fatalf("expected one join, got joined=%d already=%d", joined, already)
	}
	if got := env.entries.count(item.ID); got != 1 {
		t.Fatalf("expected one stored entry, got %d", got)
	}
}

func TestEntryService_RepositoryErrorIsNotConflict(t *testing.T) {
	t.Parallel()

	competitionRepo := competitionmock.NewRepository(t)
	templateRepo := templatemock.NewRepository(t)
	entryRepo := competitionmock.NewEntryRepository(t)
	service := NewEntryService(competitionRepo, templateRepo, entryRepo, &sequenceIDs{prefix: "e"})

	competitionRepo.
		On("GetByID", mock.Anything, "comp-1").
		Return(competition.Competition{ID: "comp-1", ClubID: "club-1", Status: competition.StatusOpen}, true, nil).
		Once()
	entryRepo.
		On("Join", mock.Anything, mock.MatchedBy(func(p competition.JoinParams) bool {
			return p.CompetitionID == "comp-1" && p.ClubID == "club-1" && p.Email == "a@example.com"
		})).
		Return(competition.JoinResult{}, errors.New("connection reset")).
		Once()

	_, err := service.Join(context.Background(), JoinCompetitionInput{CompetitionID: "comp-1", Email: "A@example.com"})
	if err == nil || errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("expected raw repository error, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}
