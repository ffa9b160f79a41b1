package ports

import (
	"context"
	"time"

	"github.com/gerenciador/painel/internal/core/domain"
)

// PostalLookup resolves an 8-digit postal code. A code that does not exist
// yields domain.ErrPostalNotFound.
type PostalLookup interface {
	Lookup(ctx context.Context, cep string) (*domain.Address, error)
}

// PostalCache stores successful lookups. Get returns (nil, nil) on a miss.
type PostalCache interface {
	Get(ctx context.Context, cep string) (*domain.Address, error)
	Set(ctx context.Context, cep string, addr domain.Address, ttl time.Duration) error
}
