package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dfstools/poolimport/internal/domain/identity"
	"github.com/dfstools/poolimport/internal/domain/pool"
	qb "github.com/dfstools/poolimport/internal/platform/querybuilder"
)

type PoolRepository struct {
	db *sqlx.DB
}

func NewPoolRepository(db *sqlx.DB) *PoolRepository {
	return &PoolRepository{db: db}
}

func (r *PoolRepository) ListByScope(ctx context.Context, scope string) ([]pool.Entry, error) {
	query, args, err := qb.Select("*").From("pool_entries").
		Where(qb.Eq("scope", scope)).
		OrderBy("identity_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select pool entries query: %w", err)
	}

	var rows []poolEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select pool entries: %w", err)
	}

	out := make([]pool.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PoolRepository) ListIdentities(ctx context.Context, scope string) ([]identity.PoolIdentity, error) {
	builder := qb.Select("DISTINCT ON (identity_key) identity_key", "display_name", "team", "position").
		From("pool_entries").
		OrderBy("identity_key")
	if scope != "" {
		builder = builder.Where(qb.Eq("scope", scope))
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select pool identities query: %w", err)
	}

	var rows []struct {
		IdentityKey string `db:"identity_key"`
		DisplayName string `db:"display_name"`
		Team        string `db:"team"`
		Position    string `db:"position"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select pool identities: %w", err)
	}

	out := make([]identity.PoolIdentity, 0, len(rows))
	for _, row := range rows {
		out = append(out, identity.PoolIdentity{
			Key:         row.IdentityKey,
			DisplayName: row.DisplayName,
			Team:        row.Team,
			Position:    row.Position,
		})
	}
	return out, nil
}

// KeyExists checks committed keys across the pool and the historical set;
// a key created by any past import is a valid mapping target.
func (r *PoolRepository) KeyExists(ctx context.Context, identityKey string) (bool, error) {
	for _, table := range []string{"pool_entries", "historical_records"} {
		query, args, err := qb.Select("1").From(table).
			Where(qb.Eq("identity_key", identityKey)).
			Limit(1).
			ToSQL()
		if err != nil {
			return false, fmt.Errorf("build key exists query: %w", err)
		}

		var one int
		if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
			if isNotFound(err) {
				continue
			}
			return false, fmt.Errorf("check identity key in %s: %w", table, err)
		}
		return true, nil
	}
	return false, nil
}
