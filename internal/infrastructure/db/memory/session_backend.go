package memory

import (
	"context"
	"sync"

	"github.com/gerenciador/painel/internal/core/ports"
)

// SessionBackend keeps session records in process memory. Records are lost on
// restart.
type SessionBackend struct {
	mu      sync.RWMutex
	records map[string]ports.SessionRecord
}

func NewSessionBackend() *SessionBackend {
	return &SessionBackend{records: make(map[string]ports.SessionRecord)}
}

var _ ports.SessionBackend = (*SessionBackend)(nil)

func (b *SessionBackend) Get(_ context.Context, key string) (*ports.SessionRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rec, ok := b.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (b *SessionBackend) Put(_ context.Context, key string, rec ports.SessionRecord) error {
	b.mu.Lock()
	b.records[key] = rec
	b.mu.Unlock()
	return nil
}

func (b *SessionBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	delete(b.records, key)
	b.mu.Unlock()
	return nil
}

// Ping always succeeds; it lets the health check treat every backend alike.
func (b *SessionBackend) Ping(context.Context) error { return nil }
