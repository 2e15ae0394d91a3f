package memory

import (
	"context"
	"sort"

	"github.com/dfstools/poolimport/internal/domain/identity"
	"github.com/dfstools/poolimport/internal/domain/pool"
)

func (s *Store) ListByScope(_ context.Context, scope string) ([]pool.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.poolEntries[scope]
	out := make([]pool.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IdentityKey < out[j].IdentityKey })
	return out, nil
}

func (s *Store) ListIdentities(_ context.Context, scope string) ([]identity.PoolIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scopes := make([]string, 0, len(s.poolEntries))
	if scope != "" {
		scopes = append(scopes, scope)
	} else {
		for sc := range s.poolEntries {
			scopes = append(scopes, sc)
		}
	}

	seen := map[string]struct{}{}
	var out []identity.PoolIdentity
	for _, sc := range scopes {
		for _, e := range s.poolEntries[sc] {
			if _, dup := seen[e.IdentityKey]; dup {
				continue
			}
			seen[e.IdentityKey] = struct{}{}
			out = append(out, identity.PoolIdentity{
				Key:         e.IdentityKey,
				DisplayName: e.DisplayName,
				Team:        e.Team,
				Position:    e.Position,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *Store) KeyExists(_ context.Context, identityKey string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entries := range s.poolEntries {
		if _, ok := entries[identityKey]; ok {
			return true, nil
		}
	}
	for _, r := range s.historyRecords {
		if r.IdentityKey == identityKey {
			return true, nil
		}
	}
	return false, nil
}
