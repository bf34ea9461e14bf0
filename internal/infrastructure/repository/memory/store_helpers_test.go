package memory

import "github.com/riskibarqy/gamemaster/internal/domain/competition"

func (s *Store) entriesOf(competitionID string) []competition.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]competition.Entry, 0, len(s.entries[competitionID]))
	for _, e := range s.entries[competitionID] {
		out = append(out, e)
	}
	return out
}

func (s *Store) pickCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.picks)
}
