package memory

import (
	"sync"

	"github.com/riskibarqy/gamemaster/internal/domain/audit"
	"github.com/riskibarqy/gamemaster/internal/domain/club"
	"github.com/riskibarqy/gamemaster/internal/domain/competition"
	"github.com/riskibarqy/gamemaster/internal/domain/fixture"
	"github.com/riskibarqy/gamemaster/internal/domain/pick"
	"github.com/riskibarqy/gamemaster/internal/domain/template"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
)

// Store holds every table of the in-memory backend behind one lock so that
// multi-table writes such as a competition join are atomic.
type Store struct {
	mu sync.RWMutex

	users       map[string]user.User
	userByEmail map[string]string

	clubs      map[string]club.Club
	clubOrder  []string
	clubBySlug map[string]string
	members    map[string]map[string]club.Member

	templates     map[string]template.Template
	templateOrder []string

	competitions     map[string]competition.Competition
	competitionOrder []string
	entries          map[string]map[string]competition.Entry

	rounds   map[string]fixture.Round
	fixtures map[string]fixture.Fixture

	picks map[pickKey]pick.Pick

	auditEvents []audit.Event
}

type pickKey struct {
	userID    string
	fixtureID string
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]user.User),
		userByEmail:  make(map[string]string),
		clubs:        make(map[string]club.Club),
		clubBySlug:   make(map[string]string),
		members:      make(map[string]map[string]club.Member),
		templates:    make(map[string]template.Template),
		competitions: make(map[string]competition.Competition),
		entries:      make(map[string]map[string]competition.Entry),
		rounds:       make(map[string]fixture.Round),
		fixtures:     make(map[string]fixture.Fixture),
		picks:        make(map[pickKey]pick.Pick),
	}
}

// PutRound stores or replaces a round. Rounds have no write API.
func (s *Store) PutRound(r fixture.Round) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds[r.ID] = r
}

func (s *Store) PutFixture(f fixture.Fixture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixtures[f.ID] = f
}

// AuditEvents returns a copy of the appended audit events in order.
func (s *Store) AuditEvents() []audit.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event(nil), s.auditEvents...)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
