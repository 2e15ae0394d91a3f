package memory

import (
	"sync"

	"github.com/dfstools/poolimport/internal/domain/history"
	"github.com/dfstools/poolimport/internal/domain/identity"
	"github.com/dfstools/poolimport/internal/domain/importrun"
	"github.com/dfstools/poolimport/internal/domain/pool"
)

// Store backs every repository interface with in-process maps under one
// lock, so a commit is atomic the same way the postgres transaction is.
// Used by tests and by dev mode when no DB_URL is configured.
type Store struct {
	mu sync.RWMutex

	// scope -> identity key -> entry
	poolEntries map[string]map[string]pool.Entry

	historyRecords []history.Record
	historyBackup  []history.Record

	importRecords map[string]importrun.Record
	importOrder   []string
	snapshots     map[string][]importrun.SnapshotEntry

	aliases    map[string]identity.Alias
	candidates map[string]identity.UnmatchedCandidate

	failNextCommit error
}

func NewStore() *Store {
	return &Store{
		poolEntries:   map[string]map[string]pool.Entry{},
		importRecords: map[string]importrun.Record{},
		snapshots:     map[string][]importrun.SnapshotEntry{},
		aliases:       map[string]identity.Alias{},
		candidates:    map[string]identity.UnmatchedCandidate{},
	}
}

// FailNextCommit makes the next CommitImport return err without touching
// any state. Storage-failure paths in tests go through this.
func (s *Store) FailNextCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNextCommit = err
}

// HistoryRecords returns a copy of the live historical set.
func (s *Store) HistoryRecords() []history.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]history.Record, len(s.historyRecords))
	copy(out, s.historyRecords)
	return out
}

// HistoryBackup returns a copy of the single-generation backup set.
func (s *Store) HistoryBackup() []history.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]history.Record, len(s.historyBackup))
	copy(out, s.historyBackup)
	return out
}
