package pool

import (
	"regexp"
	"time"
)

// Source identifies one of the three fixed spreadsheet export formats.
type Source string

const (
	SourceRoster  Source = "roster"
	SourceSalary  Source = "salary"
	SourceHistory Source = "history"
)

func (s Source) Valid() bool {
	switch s {
	case SourceRoster, SourceSalary, SourceHistory:
		return true
	default:
		return false
	}
}

// OverwriteRule determines which prior rows are deleted before a new
// import's rows are inserted. It is resolved from the source once, at the
// start of the persist phase, never inferred from data.
type OverwriteRule int

const (
	// OverwriteSameSource deletes only this scope's entries carrying the
	// same source tag.
	OverwriteSameSource OverwriteRule = iota
	// OverwriteScope deletes every entry in the scope; the source is
	// authoritative and fully supersedes whatever was there.
	OverwriteScope
	// OverwriteGlobalHistory replaces the entire historical record set,
	// backing up the prior generation first.
	OverwriteGlobalHistory
)

func (s Source) OverwriteRule() OverwriteRule {
	switch s {
	case SourceSalary:
		return OverwriteScope
	case SourceHistory:
		return OverwriteGlobalHistory
	default:
		return OverwriteSameSource
	}
}

// ProjectionSheet selects which of the salary export's two alternative
// projection sheets to honor. The two disagree for the same players and
// are never reconciled; imports take exactly one as directed.
type ProjectionSheet string

const (
	ProjectionMain ProjectionSheet = "main"
	ProjectionAlt  ProjectionSheet = "alt"
)

func (p ProjectionSheet) Valid() bool {
	return p == ProjectionMain || p == ProjectionAlt
}

// scopePattern is season-week, e.g. "2025-14". Nothing parses a scope
// beyond equality; the format check only keeps junk out of the partition key.
var scopePattern = regexp.MustCompile(`^\d{4}-\d{1,2}$`)

func ValidScope(scope string) bool {
	return scopePattern.MatchString(scope)
}

// UniformRecord is the source-agnostic row shape every format adapter
// produces. Name, team and position are required; the rest is optional
// and nil when the source column was blank.
type UniformRecord struct {
	Name       string
	Team       string
	Position   string
	Salary     *int
	Projection *float64
	Ownership  *float64
	Ceiling    *float64
	Floor      *float64
	Notes      string
}

// Entry is one player's attributes as imported from one source for one scope.
// Within a scope there is at most one Entry per identity key; the overwrite
// rules maintain that invariant across sources.
type Entry struct {
	IdentityKey string
	Scope       string
	Source      Source
	DisplayName string
	Team        string
	Position    string
	Salary      int
	Projection  float64
	Ownership   float64
	Ceiling     *float64
	Floor       *float64
	Notes       string
	ImportedAt  time.Time
}

// NormalizeOwnership maps raw ownership input into [0,1]. Values above 1
// are assumed to be percentages and divided by 100. Already-normalized
// values pass through unchanged, so the function is idempotent.
func NormalizeOwnership(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}
