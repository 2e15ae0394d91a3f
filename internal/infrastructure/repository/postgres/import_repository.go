package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dfstools/poolimport/internal/domain/importrun"
	"github.com/dfstools/poolimport/internal/domain/pool"
	qb "github.com/dfstools/poolimport/internal/platform/querybuilder"
)

// insertChunkSize bounds the arg count of one multi-row INSERT; 13 columns
// per pool entry keeps 500 rows well under the driver's 65535 parameter cap.
const insertChunkSize = 500

const poolEntryUpsertSuffix = `ON CONFLICT (scope, identity_key)
DO UPDATE SET
    source = EXCLUDED.source,
    display_name = EXCLUDED.display_name,
    team = EXCLUDED.team,
    position = EXCLUDED.position,
    salary = EXCLUDED.salary,
    projection = EXCLUDED.projection,
    ownership = EXCLUDED.ownership,
    ceiling = EXCLUDED.ceiling,
    floor = EXCLUDED.floor,
    notes = EXCLUDED.notes,
    imported_at = EXCLUDED.imported_at`

type ImportRepository struct {
	db *sqlx.DB
}

func NewImportRepository(db *sqlx.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

// CommitImport applies the record's overwrite rule and persists the whole
// input in one transaction. Any error rolls back everything, candidates
// included.
func (r *ImportRepository) CommitImport(ctx context.Context, input importrun.CommitInput) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx commit import: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	record := input.Record
	if err := applyOverwriteRule(ctx, tx, record); err != nil {
		return err
	}

	query, args, err := qb.InsertModels("import_records",
		[]importRecordInsertModel{importRecordToInsertModel(record)}, "")
	if err != nil {
		return fmt.Errorf("build insert import record query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert import record %s: %w", record.ID, err)
	}

	if err := insertPoolEntries(ctx, tx, input.Entries); err != nil {
		return err
	}
	if err := copyHistoryRecords(ctx, tx, input); err != nil {
		return err
	}
	if err := copySnapshots(ctx, tx, input); err != nil {
		return err
	}
	if err := insertCandidates(ctx, tx, input); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import tx: %w", err)
	}
	return nil
}

func applyOverwriteRule(ctx context.Context, tx *sqlx.Tx, record importrun.Record) error {
	switch record.Source.OverwriteRule() {
	case pool.OverwriteScope:
		query, args, err := qb.DeleteFrom("pool_entries").
			Where(qb.Eq("scope", record.Scope)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete scope entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete scope %s entries: %w", record.Scope, err)
		}

	case pool.OverwriteGlobalHistory:
		// Single-generation backup: the previous backup is discarded, the
		// live set copied verbatim, then cleared for the incoming file.
		if _, err := tx.ExecContext(ctx, `TRUNCATE historical_records_backup`); err != nil {
			return fmt.Errorf("clear history backup: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO historical_records_backup SELECT * FROM historical_records`); err != nil {
			return fmt.Errorf("back up historical records: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM historical_records`); err != nil {
			return fmt.Errorf("delete historical records: %w", err)
		}

	default:
		query, args, err := qb.DeleteFrom("pool_entries").
			Where(
				qb.Eq("scope", record.Scope),
				qb.Eq("source", string(record.Source)),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete same-source entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete scope %s source %s entries: %w", record.Scope, record.Source, err)
		}
	}
	return nil
}

func insertPoolEntries(ctx context.Context, tx *sqlx.Tx, entries []pool.Entry) error {
	for start := 0; start < len(entries); start += insertChunkSize {
		end := min(start+insertChunkSize, len(entries))

		models := make([]poolEntryTableModel, 0, end-start)
		for _, e := range entries[start:end] {
			models = append(models, poolEntryToInsertModel(e))
		}

		query, args, err := qb.InsertModels("pool_entries", models, poolEntryUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build insert pool entries query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert pool entries chunk at %d: %w", start, err)
		}
	}
	return nil
}

func copyHistoryRecords(ctx context.Context, tx *sqlx.Tx, input importrun.CommitInput) error {
	if len(input.History) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("historical_records",
		"identity_key", "season", "week", "team", "opponent", "position",
		"snaps", "snap_share", "targets", "target_share", "touches",
		"touch_share", "points", "salary", "imported_at"))
	if err != nil {
		return fmt.Errorf("prepare copy historical records: %w", err)
	}

	for _, rec := range input.History {
		m := historyRecordToInsertModel(rec)
		if _, err := stmt.ExecContext(ctx,
			m.IdentityKey, m.Season, m.Week, m.Team, m.Opponent, m.Position,
			m.Snaps, m.SnapShare, m.Targets, m.TargetShare, m.Touches,
			m.TouchShare, m.Points, m.Salary, m.ImportedAt); err != nil {
			stmt.Close()
			return fmt.Errorf("copy historical record %s: %w", m.IdentityKey, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flush historical records copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close historical records copy: %w", err)
	}
	return nil
}

func copySnapshots(ctx context.Context, tx *sqlx.Tx, input importrun.CommitInput) error {
	if len(input.Snapshots) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("pool_snapshot_entries",
		"import_public_id", "identity_key", "salary", "projection",
		"ownership", "ceiling", "floor"))
	if err != nil {
		return fmt.Errorf("prepare copy snapshots: %w", err)
	}

	for _, s := range input.Snapshots {
		if _, err := stmt.ExecContext(ctx,
			s.ImportID, s.IdentityKey, s.Salary, s.Projection,
			s.Ownership, s.Ceiling, s.Floor); err != nil {
			stmt.Close()
			return fmt.Errorf("copy snapshot %s: %w", s.IdentityKey, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flush snapshots copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close snapshots copy: %w", err)
	}
	return nil
}

func insertCandidates(ctx context.Context, tx *sqlx.Tx, input importrun.CommitInput) error {
	if len(input.Candidates) == 0 {
		return nil
	}

	models := make([]candidateInsertModel, 0, len(input.Candidates))
	for _, c := range input.Candidates {
		models = append(models, candidateToInsertModel(c))
	}

	query, args, err := qb.InsertModels("unmatched_candidates", models, "")
	if err != nil {
		return fmt.Errorf("build insert candidates query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert unmatched candidates: %w", err)
	}
	return nil
}

func (r *ImportRepository) GetRecord(ctx context.Context, importID string) (importrun.Record, bool, error) {
	query, args, err := qb.Select("*").From("import_records").
		Where(qb.Eq("public_id", importID)).
		ToSQL()
	if err != nil {
		return importrun.Record{}, false, fmt.Errorf("build get import record query: %w", err)
	}

	var row importRecordTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return importrun.Record{}, false, nil
		}
		return importrun.Record{}, false, fmt.Errorf("get import record: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *ImportRepository) ListRecords(ctx context.Context, scope string, source pool.Source) ([]importrun.Record, error) {
	conditions := []qb.Condition{qb.Eq("scope", scope)}
	if source != "" {
		conditions = append(conditions, qb.Eq("source", string(source)))
	}

	query, args, err := qb.Select("*").From("import_records").
		Where(conditions...).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list import records query: %w", err)
	}

	var rows []importRecordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list import records: %w", err)
	}

	out := make([]importrun.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ImportRepository) PreviousImportID(ctx context.Context, record importrun.Record) (string, bool, error) {
	query, args, err := qb.Select("public_id").From("import_records").
		Where(
			qb.Eq("scope", record.Scope),
			qb.Eq("source", string(record.Source)),
			qb.Lt("created_at", record.CreatedAt),
		).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return "", false, fmt.Errorf("build previous import query: %w", err)
	}

	var id string
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get previous import: %w", err)
	}
	return id, true, nil
}

func (r *ImportRepository) ListSnapshots(ctx context.Context, importID string) ([]importrun.SnapshotEntry, error) {
	query, args, err := qb.Select("import_public_id", "identity_key", "salary",
		"projection", "ownership", "ceiling", "floor").
		From("pool_snapshot_entries").
		Where(qb.Eq("import_public_id", importID)).
		OrderBy("identity_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list snapshots query: %w", err)
	}

	var rows []snapshotEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	out := make([]importrun.SnapshotEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
