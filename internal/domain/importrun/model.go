package importrun

import (
	"time"

	"github.com/dfstools/poolimport/internal/domain/pool"
)

// Record is the audit entry for one committed import. Created exactly once
// inside the commit transaction, never mutated afterward.
type Record struct {
	ID             string
	Scope          string
	Source         pool.Source
	FileName       string
	PersistedCount int
	Summary        Summary
	CreatedAt      time.Time
}

// Summary counts how each row of the import resolved. Serialized into the
// record's summary blob.
type Summary struct {
	ExactMatches          int `json:"exact_matches"`
	AliasMatches          int `json:"alias_matches"`
	FuzzyMatches          int `json:"fuzzy_matches"`
	NewEntities           int `json:"new_entities"`
	Unmatched             int `json:"unmatched"`
	CeilingFloorCorrected int `json:"ceiling_floor_corrected"`
}

// SnapshotEntry is a write-once per-player copy of the numeric pool fields
// at import time. Read only by delta computation, never by pool queries.
type SnapshotEntry struct {
	ImportID    string
	IdentityKey string
	Salary      int
	Projection  float64
	Ownership   float64
	Ceiling     *float64
	Floor       *float64
}

// DeltaSummary aggregates the drift between two snapshots of the same
// scope and source. The zero value is the correct answer for a first
// import, which has nothing to drift from.
type DeltaSummary struct {
	OwnershipChanged       int     `json:"ownership_changed"`
	OwnershipMeanAbsChange float64 `json:"ownership_mean_abs_change"`
	ProjectionChanged      int     `json:"projection_changed"`
	Added                  int     `json:"added"`
	Removed                int     `json:"removed"`
}

// FieldChange is one player's old and new value for a numeric field.
type FieldChange struct {
	IdentityKey string  `json:"identity_key"`
	From        float64 `json:"from"`
	To          float64 `json:"to"`
}

// Comparison is the detailed pairwise view between two arbitrary imports:
// full per-player change lists instead of counts.
type Comparison struct {
	FromImportID      string        `json:"from_import_id"`
	ToImportID        string        `json:"to_import_id"`
	OwnershipChanges  []FieldChange `json:"ownership_changes"`
	ProjectionChanges []FieldChange `json:"projection_changes"`
	Added             []string      `json:"added"`
	Removed           []string      `json:"removed"`
}
