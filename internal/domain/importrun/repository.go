package importrun

import (
	"context"

	"github.com/dfstools/poolimport/internal/domain/history"
	"github.com/dfstools/poolimport/internal/domain/identity"
	"github.com/dfstools/poolimport/internal/domain/pool"
)

// CommitInput is everything one import writes. CommitImport applies the
// record's overwrite rule, then persists all of it in a single transaction.
type CommitInput struct {
	Record     Record
	Entries    []pool.Entry
	History    []history.Record
	Snapshots  []SnapshotEntry
	Candidates []identity.UnmatchedCandidate
}

// Repository describes import-record persistence. CommitImport is the only
// write path for pool entries, history records, snapshots and candidates;
// it either applies the whole input or none of it.
type Repository interface {
	CommitImport(ctx context.Context, input CommitInput) error
	GetRecord(ctx context.Context, importID string) (Record, bool, error)
	// ListRecords returns a scope's records newest first. Empty source
	// means all sources.
	ListRecords(ctx context.Context, scope string, source pool.Source) ([]Record, error)
	// PreviousImportID finds the most recent committed import for the same
	// scope and source strictly older than the given record. The bool is
	// false on the first import of a scope+source pair.
	PreviousImportID(ctx context.Context, record Record) (string, bool, error)
	ListSnapshots(ctx context.Context, importID string) ([]SnapshotEntry, error)
}
