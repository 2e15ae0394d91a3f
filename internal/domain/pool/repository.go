package pool

import (
	"context"

	"github.com/dfstools/poolimport/internal/domain/identity"
)

// Repository describes pool reads needed by use cases. Writes go through
// the import commit, never through this interface.
type Repository interface {
	ListByScope(ctx context.Context, scope string) ([]Entry, error)
	// ListIdentities returns the matching universe for an import. An empty
	// scope means all scopes; history imports match globally while roster
	// and salary imports match within their own scope.
	ListIdentities(ctx context.Context, scope string) ([]identity.PoolIdentity, error)
	// KeyExists reports whether an identity key was ever committed in any
	// scope. Review mapping validates canonical keys through it.
	KeyExists(ctx context.Context, identityKey string) (bool, error)
}
