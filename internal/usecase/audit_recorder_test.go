package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/gamemaster/internal/domain/audit"
	auditmock "github.com/riskibarqy/gamemaster/internal/mocks/domain/audit"
	"github.com/riskibarqy/gamemaster/internal/platform/logging"
	"github.com/riskibarqy/gamemaster/internal/platform/resilience"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestAuditRecorder_InlinePersistsAndLogs(t *testing.T) {
	t.Parallel()

	repo := auditmock.NewRepository(t)
	core, logs := observer.New(zapcore.InfoLevel)
	recorder, err := NewAuditRecorder(repo, &sequenceIDs{prefix: "evt"}, logging.FromZap(zap.New(core)), AuditConfig{})
	if err != nil {
		t.Fatalf("new audit recorder: %v", err)
	}
	fixed := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	recorder.now = func() time.Time { return fixed }

	repo.On("Append", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.ID == "evt-1" && e.Action == audit.ActionRequireClubAdmin && e.OccurredAt.Equal(fixed)
	})).Return(nil).Once()

	recorder.Record(context.Background(), audit.Event{
		Action:      audit.ActionRequireClubAdmin,
		Outcome:     audit.OutcomeDeny,
		ActorUserID: "user-1",
		ClubID:      "club-1",
		Reason:      "not a club admin",
	})

	entries := logs.FilterMessage("audit event").All()
	if len(entries) != 1 {
		t.Fatalf("expected one audit log line, got %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("expected deny to log at warn, got %s", entries[0].Level)
	}
	if entries[0].ContextMap()["reason"] != "not a club admin" {
		t.Fatalf("unexpected fields: %v", entries[0].ContextMap())
	}
}

func TestAuditRecorder_StoreFailureDoesNotPropagate(t *testing.T) {
	t.Parallel()

	repo := auditmock.NewRepository(t)
	recorder, err := NewAuditRecorder(repo, &sequenceIDs{prefix: "evt"}, logging.NewNop(), AuditConfig{
		Circuit: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Hour, HalfOpenMaxReq: 1},
	})
	if err != nil {
		t.Fatalf("new audit recorder: %v", err)
	}

	// The breaker opens after two failures, so later events never reach the store.
	repo.On("Append", mock.Anything, mock.Anything).Return(errors.New("audit store down")).Times(2)

	for i := 0; i < 5; i++ {
		recorder.Record(context.Background(), audit.Event{Action: audit.ActionCompetitionOpen, Outcome: audit.OutcomeSuccess})
	}
}

func TestAuditRecorder_PooledCloseDrains(t *testing.T) {
	t.Parallel()

	repo := auditmock.NewRepository(t)
	recorder, err := NewAuditRecorder(repo, &sequenceIDs{prefix: "evt"}, logging.NewNop(), AuditConfig{Workers: 2})
	if err != nil {
		t.Fatalf("new audit recorder: %v", err)
	}

	done := make(chan struct{}, 3)
	repo.On("Append", mock.Anything, mock.Anything).Return(nil).Run(func(mock.Arguments) {
		done <- struct{}{}
	}).Times(3)

	for i := 0; i < 3; i++ {
		recorder.Record(context.Background(), audit.Event{Action: audit.ActionCompetitionActivate, Outcome: audit.OutcomeSuccess})
		// Nonblocking pool: wait so no submission is rejected as overloaded.
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for audit event %d", i)
		}
	}

	if err := recorder.Close(time.Second); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestAuditRecorder_NilIsNoop(t *testing.T) {
	var recorder *AuditRecorder
	recorder.Record(context.Background(), audit.Event{Action: audit.ActionCompetitionOpen})
	if err := recorder.Close(time.Second); err != nil {
		t.Fatalf("close nil recorder: %v", err)
	}
}
