package cache

import (
	"context"
	"strings"

	"github.com/dfstools/poolimport/internal/domain/identity"
	basecache "github.com/dfstools/poolimport/internal/platform/cache"
)

// AliasRepository is a read-through cache over the alias store. Every
// import row does an alias lookup while aliases mutate only through the
// review workflow, so hits dominate. Upsert invalidates its own key.
type AliasRepository struct {
	next  identity.AliasRepository
	cache *basecache.Store
}

func NewAliasRepository(next identity.AliasRepository, cache *basecache.Store) *AliasRepository {
	return &AliasRepository{next: next, cache: cache}
}

func aliasKey(aliasText string) string {
	return "alias:text:" + strings.TrimSpace(aliasText)
}

func (r *AliasRepository) Lookup(ctx context.Context, aliasText string) (identity.Alias, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, aliasKey(aliasText), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.Lookup(ctx, aliasText)
		if err != nil {
			return nil, err
		}
		return cachedAlias{value: item, exists: exists}, nil
	})
	if err != nil {
		return identity.Alias{}, false, err
	}

	cached, _ := v.(cachedAlias)
	return cached.value, cached.exists, nil
}

func (r *AliasRepository) Upsert(ctx context.Context, alias identity.Alias) error {
	if err := r.next.Upsert(ctx, alias); err != nil {
		return err
	}
	r.cache.Delete(ctx, aliasKey(alias.AliasText))
	return nil
}

// Invalidate drops one alias text from the cache. The review service calls
// it after a candidate resolution writes an alias outside this wrapper.
func (r *AliasRepository) Invalidate(aliasText string) {
	r.cache.Delete(context.Background(), aliasKey(aliasText))
}

type cachedAlias struct {
	value  identity.Alias
	exists bool
}
