package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/dfstools/poolimport/internal/domain/identity"
	qb "github.com/dfstools/poolimport/internal/platform/querybuilder"
)

const aliasUpsertSuffix = `ON CONFLICT (alias_text)
DO UPDATE SET
    canonical_key = EXCLUDED.canonical_key,
    updated_at = EXCLUDED.updated_at`

type AliasRepository struct {
	db *sqlx.DB
}

func NewAliasRepository(db *sqlx.DB) *AliasRepository {
	return &AliasRepository{db: db}
}

func (r *AliasRepository) Lookup(ctx context.Context, aliasText string) (identity.Alias, bool, error) {
	query, args, err := qb.Select("*").From("aliases").
		Where(qb.Eq("alias_text", strings.TrimSpace(aliasText))).
		ToSQL()
	if err != nil {
		return identity.Alias{}, false, fmt.Errorf("build lookup alias query: %w", err)
	}

	var row aliasTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return identity.Alias{}, false, nil
		}
		return identity.Alias{}, false, fmt.Errorf("lookup alias: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *AliasRepository) Upsert(ctx context.Context, alias identity.Alias) error {
	return upsertAlias(ctx, r.db, alias)
}

// upsertAlias runs against either the pool handle or an open transaction.
func upsertAlias(ctx context.Context, execer sqlx.ExecerContext, alias identity.Alias) error {
	alias.AliasText = strings.TrimSpace(alias.AliasText)

	query, args, err := qb.InsertModels("aliases",
		[]aliasInsertModel{aliasToInsertModel(alias)}, aliasUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert alias query: %w", err)
	}
	if _, err := execer.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert alias %q: %w", alias.AliasText, err)
	}
	return nil
}
