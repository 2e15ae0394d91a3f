package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dfstools/poolimport/internal/domain/identity"
	qb "github.com/dfstools/poolimport/internal/platform/querybuilder"
)

type CandidateRepository struct {
	db *sqlx.DB
}

func NewCandidateRepository(db *sqlx.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) ListByImport(ctx context.Context, importID string, status identity.CandidateStatus) ([]identity.UnmatchedCandidate, error) {
	conditions := []qb.Condition{qb.Eq("import_public_id", importID)}
	if status != "" {
		conditions = append(conditions, qb.Eq("status", string(status)))
	}

	query, args, err := qb.Select("*").From("unmatched_candidates").
		Where(conditions...).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list candidates query: %w", err)
	}

	var rows []candidateTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	out := make([]identity.UnmatchedCandidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, candidateID string) (identity.UnmatchedCandidate, bool, error) {
	query, args, err := qb.Select("*").From("unmatched_candidates").
		Where(qb.Eq("public_id", candidateID)).
		ToSQL()
	if err != nil {
		return identity.UnmatchedCandidate{}, false, fmt.Errorf("build get candidate query: %w", err)
	}

	var row candidateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return identity.UnmatchedCandidate{}, false, nil
		}
		return identity.UnmatchedCandidate{}, false, fmt.Errorf("get candidate: %w", err)
	}
	return row.toDomain(), true, nil
}

// Resolve upserts the alias and flips the candidate to mapped in one
// transaction.
func (r *CandidateRepository) Resolve(ctx context.Context, candidateID string, alias identity.Alias) (identity.UnmatchedCandidate, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("begin tx resolve candidate: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := upsertAlias(ctx, tx, alias); err != nil {
		return identity.UnmatchedCandidate{}, err
	}

	resolved, err := transitionCandidate(ctx, tx, candidateID, identity.CandidateMapped, alias.UpdatedAt)
	if err != nil {
		return identity.UnmatchedCandidate{}, err
	}

	if err := tx.Commit(); err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("commit resolve candidate tx: %w", err)
	}
	return resolved, nil
}

func (r *CandidateRepository) Ignore(ctx context.Context, candidateID string) (identity.UnmatchedCandidate, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("begin tx ignore candidate: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ignored, err := transitionCandidate(ctx, tx, candidateID, identity.CandidateIgnored, time.Now().UTC())
	if err != nil {
		return identity.UnmatchedCandidate{}, err
	}

	if err := tx.Commit(); err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("commit ignore candidate tx: %w", err)
	}
	return ignored, nil
}

func transitionCandidate(ctx context.Context, tx *sqlx.Tx, candidateID string, status identity.CandidateStatus, resolvedAt time.Time) (identity.UnmatchedCandidate, error) {
	query, args, err := qb.Update("unmatched_candidates").
		Set("status", string(status)).
		Set("resolved_at", resolvedAt).
		Where(qb.Eq("public_id", candidateID)).
		ToSQL()
	if err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("build update candidate query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("update candidate %s: %w", candidateID, err)
	}

	query, args, err = qb.Select("*").From("unmatched_candidates").
		Where(qb.Eq("public_id", candidateID)).
		ToSQL()
	if err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("build reread candidate query: %w", err)
	}

	var row candidateTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		return identity.UnmatchedCandidate{}, fmt.Errorf("reread candidate %s: %w", candidateID, err)
	}
	return row.toDomain(), nil
}

func (r *CandidateRepository) CountPending(ctx context.Context, importID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("unmatched_candidates").
		Where(
			qb.Eq("import_public_id", importID),
			qb.Eq("status", string(identity.CandidatePending)),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count pending candidates query: %w", err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count pending candidates: %w", err)
	}
	return n, nil
}
