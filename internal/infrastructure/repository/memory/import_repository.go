package memory

import (
	"context"

	"github.com/dfstools/poolimport/internal/domain/importrun"
	"github.com/dfstools/poolimport/internal/domain/pool"
)

func (s *Store) CommitImport(_ context.Context, input importrun.CommitInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failNextCommit; err != nil {
		s.failNextCommit = nil
		return err
	}

	record := input.Record
	switch record.Source.OverwriteRule() {
	case pool.OverwriteScope:
		delete(s.poolEntries, record.Scope)
	case pool.OverwriteGlobalHistory:
		s.historyBackup = s.historyRecords
		s.historyRecords = nil
	default:
		entries := s.poolEntries[record.Scope]
		for key, e := range entries {
			if e.Source == record.Source {
				delete(entries, key)
			}
		}
	}

	if len(input.Entries) > 0 {
		entries := s.poolEntries[record.Scope]
		if entries == nil {
			entries = map[string]pool.Entry{}
			s.poolEntries[record.Scope] = entries
		}
		for _, e := range input.Entries {
			entries[e.IdentityKey] = e
		}
	}

	s.historyRecords = append(s.historyRecords, input.History...)

	s.importRecords[record.ID] = record
	s.importOrder = append(s.importOrder, record.ID)
	s.snapshots[record.ID] = append([]importrun.SnapshotEntry(nil), input.Snapshots...)

	for _, c := range input.Candidates {
		s.candidates[c.ID] = c
	}

	return nil
}

func (s *Store) GetRecord(_ context.Context, importID string) (importrun.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.importRecords[importID]
	return r, ok, nil
}

func (s *Store) ListRecords(_ context.Context, scope string, source pool.Source) ([]importrun.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []importrun.Record
	for i := len(s.importOrder) - 1; i >= 0; i-- {
		r := s.importRecords[s.importOrder[i]]
		if r.Scope != scope {
			continue
		}
		if source != "" && r.Source != source {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) PreviousImportID(_ context.Context, record importrun.Record) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.importOrder) - 1; i >= 0; i-- {
		r := s.importRecords[s.importOrder[i]]
		if r.ID == record.ID || r.Scope != record.Scope || r.Source != record.Source {
			continue
		}
		if r.CreatedAt.Before(record.CreatedAt) {
			return r.ID, true, nil
		}
	}
	return "", false, nil
}

func (s *Store) ListSnapshots(_ context.Context, importID string) ([]importrun.SnapshotEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]importrun.SnapshotEntry, len(s.snapshots[importID]))
	copy(out, s.snapshots[importID])
	return out, nil
}
