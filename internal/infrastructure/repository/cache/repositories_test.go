package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dfstools/poolimport/internal/domain/identity"
	"github.com/dfstools/poolimport/internal/infrastructure/repository/memory"
	basecache "github.com/dfstools/poolimport/internal/platform/cache"
)

// countingAliasRepo wraps the memory store to observe how often the
// backing Lookup actually runs.
type countingAliasRepo struct {
	next    identity.AliasRepository
	lookups atomic.Int32
}

func (r *countingAliasRepo) Lookup(ctx context.Context, aliasText string) (identity.Alias, bool, error) {
	r.lookups.Add(1)
	return r.next.Lookup(ctx, aliasText)
}

func (r *countingAliasRepo) Upsert(ctx context.Context, alias identity.Alias) error {
	return r.next.Upsert(ctx, alias)
}

func newCachedAliasFixture(t *testing.T) (*AliasRepository, *countingAliasRepo) {
	t.Helper()
	counting := &countingAliasRepo{next: memory.NewStore()}
	return NewAliasRepository(counting, basecache.NewStore(time.Minute)), counting
}

func TestAliasRepository_LookupIsReadThrough(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, backing := newCachedAliasFixture(t)

	if err := backing.Upsert(ctx, identity.Alias{
		ID: "a-1", AliasText: "Pat Mahomes", CanonicalKey: "patrick_mahomes_KC_QB",
	}); err != nil {
		t.Fatalf("seed alias: %v", err)
	}

	for i := 0; i < 3; i++ {
		alias, ok, err := repo.Lookup(ctx, "Pat Mahomes")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if !ok || alias.CanonicalKey != "patrick_mahomes_KC_QB" {
			t.Fatalf("unexpected alias: %+v ok=%t", alias, ok)
		}
	}
	if backing.lookups.Load() != 1 {
		t.Fatalf("repeated lookups must hit the cache, backing ran %d times", backing.lookups.Load())
	}
}

func TestAliasRepository_NegativeLookupsAreCachedToo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, backing := newCachedAliasFixture(t)

	for i := 0; i < 3; i++ {
		_, ok, err := repo.Lookup(ctx, "Nobody")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if ok {
			t.Fatalf("unknown alias must miss")
		}
	}
	if backing.lookups.Load() != 1 {
		t.Fatalf("negative results must be cached, backing ran %d times", backing.lookups.Load())
	}
}

func TestAliasRepository_UpsertInvalidatesOwnKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, backing := newCachedAliasFixture(t)

	// Prime the cache with a miss, then write the alias.
	if _, ok, _ := repo.Lookup(ctx, "Pat Mahomes"); ok {
		t.Fatalf("unexpected hit before upsert")
	}
	if err := repo.Upsert(ctx, identity.Alias{
		ID: "a-1", AliasText: "Pat Mahomes", CanonicalKey: "patrick_mahomes_KC_QB",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	alias, ok, err := repo.Lookup(ctx, "Pat Mahomes")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok || alias.CanonicalKey != "patrick_mahomes_KC_QB" {
		t.Fatalf("upsert must drop the stale negative entry: %+v ok=%t", alias, ok)
	}
	if backing.lookups.Load() != 2 {
		t.Fatalf("post-upsert lookup must reload, backing ran %d times", backing.lookups.Load())
	}
}

func TestAliasRepository_InvalidateDropsExternalWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo, backing := newCachedAliasFixture(t)

	if _, ok, _ := repo.Lookup(ctx, "Pat Mahomes"); ok {
		t.Fatalf("unexpected hit before write")
	}

	// Write around the wrapper, the way candidate resolution does, then
	// invalidate through the wrapper.
	if err := backing.next.Upsert(ctx, identity.Alias{
		ID: "a-1", AliasText: "Pat Mahomes", CanonicalKey: "patrick_mahomes_KC_QB",
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	repo.Invalidate("Pat Mahomes")

	_, ok, err := repo.Lookup(ctx, "Pat Mahomes")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok {
		t.Fatalf("invalidated key must be reloaded from the backing store")
	}
}
