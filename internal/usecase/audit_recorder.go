package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/gamemaster/internal/domain/audit"
	idgen "github.com/riskibarqy/gamemaster/internal/platform/id"
	"github.com/riskibarqy/gamemaster/internal/platform/logging"
	"github.com/riskibarqy/gamemaster/internal/platform/resilience"
)

type AuditConfig struct {
	// Workers <= 0 persists events inline on the caller goroutine.
	Workers int
	Timeout time.Duration
	Circuit resilience.CircuitBreakerConfig
}

type auditSink interface {
	Record(ctx context.Context, e audit.Event)
}

// AuditRecorder logs every event and persists it in the background. A failing
// audit store never fails the request that produced the event.
type AuditRecorder struct {
	repo    audit.Repository
	idGen   idgen.Generator
	logger  *logging.Logger
	pool    *ants.Pool
	breaker *resilience.CircuitBreaker
	timeout time.Duration
	now     func() time.Time
}

func NewAuditRecorder(repo audit.Repository, idGen idgen.Generator, logger *logging.Logger, cfg AuditConfig) (*AuditRecorder, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = idgen.NewUUIDGenerator()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	logger = logger.Named("audit")

	r := &AuditRecorder{
		repo:    repo,
		idGen:   idGen,
		logger:  logger,
		breaker: resilience.NewCircuitBreakerFromConfig(cfg.Circuit),
		timeout: cfg.Timeout,
		now:     time.Now,
	}
	if cfg.Workers > 0 {
		pool, err := ants.NewPool(cfg.Workers,
			ants.WithNonblocking(true),
			ants.WithPanicHandler(func(p any) {
				logger.Error("audit worker panic", "panic", p)
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("create audit worker pool: %w", err)
		}
		r.pool = pool
	}

	return r, nil
}

func (r *AuditRecorder) Record(ctx context.Context, e audit.Event) {
	if r == nil {
		return
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = r.now().UTC()
	}
	if e.ID == "" {
		id, err := r.idGen.NewID()
		if err != nil {
			r.logger.WarnContext(ctx, "generate audit event id failed", "action", e.Action, "error", err)
		}
		e.ID = id
	}

	fields := []any{
		"action", e.Action,
		"outcome", string(e.Outcome),
		"actor_user_id", e.ActorUserID,
		"club_id", e.ClubID,
		"competition_id", e.CompetitionID,
		"template_id", e.TemplateID,
	}
	if e.Reason != "" {
		fields = append(fields, "reason", e.Reason)
	}
	if e.Outcome == audit.OutcomeDeny {
		r.logger.WarnContext(ctx, "audit event", fields...)
	} else {
		r.logger.InfoContext(ctx, "audit event", fields...)
	}

	if r.repo == nil || e.ID == "" {
		return
	}

	persistCtx := context.WithoutCancel(ctx)
	if r.pool == nil {
		r.persist(persistCtx, e)
		return
	}
	if err := r.pool.Submit(func() { r.persist(persistCtx, e) }); err != nil {
		r.logger.WarnContext(ctx, "audit event dropped", "action", e.Action, "error", err)
	}
}

func (r *AuditRecorder) persist(ctx context.Context, e audit.Event) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.breaker.Execute(func() error {
		return r.repo.Append(ctx, e)
	})
	if err != nil {
		r.logger.WarnContext(ctx, "persist audit event failed", "action", e.Action, "event_id", e.ID, "error", err)
	}
}

// Close waits up to timeout for queued events to be written.
func (r *AuditRecorder) Close(timeout time.Duration) error {
	if r == nil || r.pool == nil {
		return nil
	}
	return r.pool.ReleaseTimeout(timeout)
}
