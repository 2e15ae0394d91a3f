package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("identity_key", "salary").
		From("pool_entries").
		Where(Eq("scope", "2025-14"), Lt("salary", 9000)).
		OrderBy("identity_key ASC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "SELECT identity_key, salary FROM pool_entries WHERE scope = $1 AND salary < $2 ORDER BY identity_key ASC LIMIT 10"
	if sql != want {
		t.Fatalf("sql mismatch:\n got=%s\nwant=%s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"2025-14", 9000}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectBuilder_Validation(t *testing.T) {
	t.Parallel()

	if _, _, err := Select().From("pool_entries").ToSQL(); err == nil {
		t.Fatalf("columns are required")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("table is required")
	}
}

func TestInCondition(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").From("aliases").
		Where(In("canonical_key", []any{"a", "b"})).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "SELECT id FROM aliases WHERE canonical_key IN ($1, $2)" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{"a", "b"}) {
		t.Fatalf("unexpected args: %v", args)
	}

	// An empty IN list can never match; it must not produce invalid SQL.
	sql, args, err = Select("id").From("aliases").
		Where(In("canonical_key", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "SELECT id FROM aliases WHERE 1=0" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 0 {
		t.Fatalf("empty IN must bind nothing: %v", args)
	}
}

func TestIsNullCondition(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").From("unmatched_candidates").
		Where(Eq("status", "pending"), IsNull("resolved_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "SELECT id FROM unmatched_candidates WHERE status = $1 AND resolved_at IS NULL" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{"pending"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertBuilder_MultiRowWithSuffix(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertInto("aliases").
		Columns("alias_text", "canonical_key").
		Values("Pat Mahomes", "patrick_mahomes_KC_QB").
		Values("P. Mahomes", "patrick_mahomes_KC_QB").
		Suffix("ON CONFLICT (alias_text) DO UPDATE SET canonical_key = EXCLUDED.canonical_key").
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "INSERT INTO aliases (alias_text, canonical_key) VALUES ($1, $2), ($3, $4) " +
		"ON CONFLICT (alias_text) DO UPDATE SET canonical_key = EXCLUDED.canonical_key"
	if sql != want {
		t.Fatalf("sql mismatch:\n got=%s\nwant=%s", sql, want)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertBuilder_RowArityMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("aliases").
		Columns("alias_text", "canonical_key").
		Values("only one").
		ToSQL()
	if err == nil {
		t.Fatalf("row arity mismatch must fail")
	}
}

func TestUpdateBuilder(t *testing.T) {
	t.Parallel()

	sql, args, err := Update("unmatched_candidates").
		Set("status", "mapped").
		Set("resolved_at", "2025-12-07T12:00:00Z").
		Where(Eq("public_id", "cand-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "UPDATE unmatched_candidates SET status = $1, resolved_at = $2 WHERE public_id = $3" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{"mapped", "2025-12-07T12:00:00Z", "cand-1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDeleteBuilder_RequiresWhere(t *testing.T) {
	t.Parallel()

	if _, _, err := DeleteFrom("pool_entries").ToSQL(); err == nil {
		t.Fatalf("unconditional delete must be rejected")
	}

	sql, args, err := DeleteFrom("pool_entries").
		Where(Eq("scope", "2025-14"), Eq("source", "roster")).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "DELETE FROM pool_entries WHERE scope = $1 AND source = $2" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{"2025-14", "roster"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertModels(t *testing.T) {
	t.Parallel()

	type aliasRow struct {
		PublicID     string `db:"public_id"`
		AliasText    string `db:"alias_text"`
		CanonicalKey string `db:"canonical_key"`
		Ignored      string `db:"-"`
		Untagged     int
	}

	rows := []aliasRow{
		{PublicID: "a-1", AliasText: "Pat Mahomes", CanonicalKey: "patrick_mahomes_KC_QB", Ignored: "x"},
		{PublicID: "a-2", AliasText: "P. Mahomes", CanonicalKey: "patrick_mahomes_KC_QB"},
	}

	sql, args, err := InsertModels("aliases", rows, "")
	if err != nil {
		t.Fatalf("insert models: %v", err)
	}
	if sql != "INSERT INTO aliases (public_id, alias_text, canonical_key) VALUES ($1, $2, $3), ($4, $5, $6)" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{
		"a-1", "Pat Mahomes", "patrick_mahomes_KC_QB",
		"a-2", "P. Mahomes", "patrick_mahomes_KC_QB",
	}) {
		t.Fatalf("unexpected args: %v", args)
	}

	if _, _, err := InsertModels("aliases", []aliasRow{}, ""); err == nil {
		t.Fatalf("empty model slice must fail")
	}
}
