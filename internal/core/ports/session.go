package ports

import (
	"context"

	"github.com/gerenciador/painel/internal/core/domain"
)

// SessionRecord is the persisted form of a session: the access token and the
// serialized user record, always written and removed together.
type SessionRecord struct {
	AccessToken string
	User        string
}

// SessionBackend is raw storage for session records. Get returns (nil, nil)
// when nothing is stored under key.
type SessionBackend interface {
	Get(ctx context.Context, key string) (*SessionRecord, error)
	Put(ctx context.Context, key string, rec SessionRecord) error
	Delete(ctx context.Context, key string) error
}

// SessionStore persists one logical session per browser session id.
type SessionStore interface {
	Save(ctx context.Context, sid string, s domain.Session) error
	// Load returns (nil, nil) when there is no usable session.
	Load(ctx context.Context, sid string) (*domain.Session, error)
	Clear(ctx context.Context, sid string) error
}
