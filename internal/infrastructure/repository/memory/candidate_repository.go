package memory

import (
	"context"
	"sort"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/dfstools/poolimport/internal/domain/identity"
)

func (s *Store) ListByImport(_ context.Context, importID string, status identity.CandidateStatus) ([]identity.UnmatchedCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []identity.UnmatchedCandidate
	for _, c := range s.candidates {
		if c.ImportID != importID {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetByID(_ context.Context, candidateID string) (identity.UnmatchedCandidate, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.candidates[candidateID]
	return c, ok, nil
}

func (s *Store) Resolve(_ context.Context, candidateID string, alias identity.Alias) (identity.UnmatchedCandidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[candidateID]
	if !ok {
		return identity.UnmatchedCandidate{}, crerr.Newf("candidate %q not found", candidateID)
	}

	s.upsertAliasLocked(alias)

	c.Status = identity.CandidateMapped
	resolvedAt := alias.UpdatedAt
	c.ResolvedAt = &resolvedAt
	s.candidates[candidateID] = c
	return c, nil
}

func (s *Store) Ignore(_ context.Context, candidateID string) (identity.UnmatchedCandidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[candidateID]
	if !ok {
		return identity.UnmatchedCandidate{}, crerr.Newf("candidate %q not found", candidateID)
	}

	c.Status = identity.CandidateIgnored
	now := time.Now().UTC()
	c.ResolvedAt = &now
	s.candidates[candidateID] = c
	return c, nil
}

func (s *Store) CountPending(_ context.Context, importID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, c := range s.candidates {
		if c.ImportID == importID && c.Status == identity.CandidatePending {
			n++
		}
	}
	return n, nil
}
