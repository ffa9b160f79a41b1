package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gerenciador/painel/internal/core/ports"
)

const (
	fieldAccessToken = "accessToken"
	fieldUser        = "user"
)

// SessionBackend stores each session as one hash so the token and the user
// record are written and removed in a single command.
// Key format: session:<storage key>
type SessionBackend struct {
	client *redis.Client
}

func NewSessionBackend(client *redis.Client) *SessionBackend {
	return &SessionBackend{client: client}
}

var _ ports.SessionBackend = (*SessionBackend)(nil)

func (b *SessionBackend) Get(ctx context.Context, key string) (*ports.SessionRecord, error) {
	fields, err := b.client.HGetAll(ctx, b.key(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis session get: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return &ports.SessionRecord{
		AccessToken: fields[fieldAccessToken],
		User:        fields[fieldUser],
	}, nil
}

func (b *SessionBackend) Put(ctx context.Context, key string, rec ports.SessionRecord) error {
	k := b.key(key)
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k)
		pipe.HSet(ctx, k, fieldAccessToken, rec.AccessToken, fieldUser, rec.User)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis session put: %w", err)
	}
	return nil
}

func (b *SessionBackend) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, b.key(key)).Err(); err != nil {
		return fmt.Errorf("redis session delete: %w", err)
	}
	return nil
}

func (b *SessionBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *SessionBackend) key(k string) string {
	return "session:" + k
}
