package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/gamemaster/internal/config"
	"github.com/riskibarqy/gamemaster/internal/domain/audit"
	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/domain/competition"
	"github.com/riskibarqy/gamemaster/internal/domain/fixture"
	"github.com/riskibarqy/gamemaster/internal/domain/pick"
	"github.com/riskibarqy/gamemaster/internal/domain/template"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	"github.com/riskibarqy/gamemaster/internal/infrastructure/account/jwtauth"
	cacherepo "github.com/riskibarqy/gamemaster/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/gamemaster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/gamemaster/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/gamemaster/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/gamemaster/internal/platform/cache"
	idgen "github.com/riskibarqy/gamemaster/internal/platform/id"
	"github.com/riskibarqy/gamemaster/internal/platform/logging"
	"github.com/riskibarqy/gamemaster/internal/platform/resilience"
	"github.com/riskibarqy/gamemaster/internal/usecase"
)

const auditDrainTimeout = 5 * time.Second

// Runtime is the assembled HTTP server plus the resources released on
// shutdown.
type Runtime struct {
	Server *http.Server

	audit *usecase.AuditRecorder
	db    *sqlx.DB
}

type repositories struct {
	users        user.Repository
	clubs        club.Repository
	templates    template.Repository
	competitions competition.Repository
	entries      competition.EntryRepository
	fixtures     fixture.Repository
	picks        pick.Repository
	audit        audit.Repository
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	rt := &Runtime{}
	repos, err := rt.buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.clubs = cacherepo.NewClubRepository(repos.clubs, store)
		repos.templates = cacherepo.NewTemplateRepository(repos.templates, store)
	}

	ids := idgen.NewUUIDGenerator()
	recorder, err := usecase.NewAuditRecorder(repos.audit, ids, logger, usecase.AuditConfig{
		Workers: cfg.AuditWorkers,
		Timeout: cfg.AuditTimeout,
		Circuit: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AuditCircuitEnabled,
			FailureThreshold: cfg.AuditCircuitFailures,
			OpenTimeout:      cfg.AuditCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AuditCircuitHalfOpenMax,
		},
	})
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("build audit recorder: %w", err)
	}
	rt.audit = recorder

	tokens, err := jwtauth.NewProvider(jwtauth.Config{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.JWTTTL,
	})
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("build token provider: %w", err)
	}

	policy := usecase.NewAccessPolicy(repos.clubs, recorder)
	handler := httpapi.NewHandler(
		usecase.NewAuthService(repos.users, repos.clubs, tokens, jwtauth.NewBcryptHasher(cfg.BcryptCost), ids),
		usecase.NewClubService(repos.clubs, repos.users, policy, recorder, ids),
		usecase.NewTemplateService(repos.templates, policy, ids),
		usecase.NewCompetitionService(repos.competitions, repos.clubs, repos.templates, repos.fixtures, policy, recorder, ids),
		usecase.NewEntryService(repos.competitions, repos.templates, repos.entries, ids),
		usecase.NewPickService(repos.users, repos.fixtures, repos.picks, ids),
		httpapi.BuildInfo{Name: cfg.ServiceName, Version: cfg.ServiceVersion},
		logger,
	)

	router := httpapi.NewRouter(handler, tokens, logger, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AuthLimiter:        httpapi.NewClientRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst),
	})

	rt.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return rt, nil
}

func (rt *Runtime) buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		store := memory.NewStore()
		memory.Seed(store, time.Now().UTC())
		logger.Warn("using in-memory store, data is lost on restart")
		return repositories{
			users:        memory.NewUserRepository(store),
			clubs:        memory.NewClubRepository(store),
			templates:    memory.NewTemplateRepository(store),
			competitions: memory.NewCompetitionRepository(store),
			entries:      memory.NewEntryRepository(store),
			fixtures:     memory.NewFixtureRepository(store),
			picks:        memory.NewPickRepository(store),
			audit:        memory.NewAuditRepository(store),
		}, nil
	}

	db, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	rt.db = db
	logger.Info("database connected", "db_name", dbNameFromURL(cfg.DBURL), "max_open_conns", cfg.DBMaxOpenConns)

	return repositories{
		users:        postgres.NewUserRepository(db),
		clubs:        postgres.NewClubRepository(db),
		templates:    postgres.NewTemplateRepository(db),
		competitions: postgres.NewCompetitionRepository(db),
		entries:      postgres.NewEntryRepository(db),
		fixtures:     postgres.NewFixtureRepository(db),
		picks:        postgres.NewPickRepository(db),
		audit:        postgres.NewAuditRepository(db),
	}, nil
}

// Close drains the audit pool before closing the database it writes to.
func (rt *Runtime) Close() error {
	var firstErr error
	if rt.audit != nil {
		if err := rt.audit.Close(auditDrainTimeout); err != nil {
			firstErr = fmt.Errorf("close audit recorder: %w", err)
		}
	}
	if rt.db != nil {
		if err := rt.db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close database: %w", err)
		}
	}
	return firstErr
}
