package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
)

// PostalCache keeps resolved addresses so repeated blurs on the same postal
// code skip the remote lookup.
// Key format: postal:<8 digits>
type PostalCache struct {
	client *redis.Client
}

func NewPostalCache(client *redis.Client) *PostalCache {
	return &PostalCache{client: client}
}

var _ ports.PostalCache = (*PostalCache)(nil)

func (c *PostalCache) Get(ctx context.Context, cep string) (*domain.Address, error) {
	raw, err := c.client.Get(ctx, c.key(cep)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postal cache get: %w", err)
	}
	var addr domain.Address
	if err := json.Unmarshal(raw, &addr); err != nil {
		_ = c.client.Del(ctx, c.key(cep)).Err()
		return nil, nil
	}
	return &addr, nil
}

func (c *PostalCache) Set(ctx context.Context, cep string, addr domain.Address, ttl time.Duration) error {
	raw, err := json.Marshal(addr)
	if err != nil {
		return fmt.Errorf("postal cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(cep), raw, ttl).Err()
}

func (c *PostalCache) key(cep string) string {
	return "postal:" + cep
}
