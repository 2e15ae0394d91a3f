package identity

import "context"

// AliasRepository describes alias persistence needs from use cases.
// Lookup is by exact alias text after whitespace trimming; fuzzy matching
// never consults this table.
type AliasRepository interface {
	Lookup(ctx context.Context, aliasText string) (Alias, bool, error)
	Upsert(ctx context.Context, alias Alias) error
}

// CandidateRepository describes unmatched-candidate persistence. Resolve
// atomically creates the alias and marks the candidate mapped; partial
// application of those two writes is not observable.
type CandidateRepository interface {
	ListByImport(ctx context.Context, importID string, status CandidateStatus) ([]UnmatchedCandidate, error)
	GetByID(ctx context.Context, candidateID string) (UnmatchedCandidate, bool, error)
	Resolve(ctx context.Context, candidateID string, alias Alias) (UnmatchedCandidate, error)
	Ignore(ctx context.Context, candidateID string) (UnmatchedCandidate, error)
	CountPending(ctx context.Context, importID string) (int, error)
}
