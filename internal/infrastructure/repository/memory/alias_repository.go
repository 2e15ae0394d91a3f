package memory

import (
	"context"
	"strings"

	"github.com/dfstools/poolimport/internal/domain/identity"
)

func (s *Store) Lookup(_ context.Context, aliasText string) (identity.Alias, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.aliases[strings.TrimSpace(aliasText)]
	return a, ok, nil
}

func (s *Store) Upsert(_ context.Context, alias identity.Alias) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.upsertAliasLocked(alias)
	return nil
}

// upsertAliasLocked keeps the original row identity on repeated mappings
// of the same alias text; only the canonical key and timestamp move.
func (s *Store) upsertAliasLocked(alias identity.Alias) {
	text := strings.TrimSpace(alias.AliasText)
	if existing, ok := s.aliases[text]; ok {
		existing.CanonicalKey = alias.CanonicalKey
		existing.UpdatedAt = alias.UpdatedAt
		s.aliases[text] = existing
		return
	}
	alias.AliasText = text
	s.aliases[text] = alias
}
