package identity

import "time"

// Alias is a permanent mapping from an observed display name to a
// canonical identity key, created only through human resolution of an
// unmatched candidate. Alias text is unique; multiple aliases may point to
// the same canonical key.
type Alias struct {
	ID           string
	AliasText    string
	CanonicalKey string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CandidateStatus string

const (
	CandidatePending CandidateStatus = "pending"
	CandidateMapped  CandidateStatus = "mapped"
	CandidateIgnored CandidateStatus = "ignored"
)

func (s CandidateStatus) Valid() bool {
	switch s {
	case CandidatePending, CandidateMapped, CandidateIgnored:
		return true
	default:
		return false
	}
}

// UnmatchedCandidate is one import record whose identity could not be
// resolved with sufficient confidence. It transitions from pending to
// mapped or ignored through explicit human action and never backward.
type UnmatchedCandidate struct {
	ID           string
	ImportID     string
	RawName      string
	Team         string
	Position     string
	SuggestedKey string
	Score        float64
	Status       CandidateStatus
	CreatedAt    time.Time
	ResolvedAt   *time.Time
}
