package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/core/domain"
)

func TestClearOnUnauthorized_ClearsSessionOfRequest(t *testing.T) {
	store := NewSessionStore(newStubBackend(), zerolog.Nop())
	ctx := context.Background()
	sess := adminSession()
	if err := store.Save(ctx, "sid-1", sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, "sid-2", sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	var cleared int
	hook := ClearOnUnauthorized(store, zerolog.Nop(), func() { cleared++ })
	hook(domain.WithSessionID(ctx, "sid-1"), &sess)

	if got, _ := store.Load(ctx, "sid-1"); got != nil {
		t.Fatalf("expected sid-1 cleared, got %+v", got)
	}
	if got, _ := store.Load(ctx, "sid-2"); got == nil {
		t.Fatal("other sessions must survive")
	}
	if cleared != 1 {
		t.Fatalf("expected 1 clear observed, got %d", cleared)
	}
}

func TestClearOnUnauthorized_NoSessionIDIsNoop(t *testing.T) {
	backend := newStubBackend()
	store := NewSessionStore(backend, zerolog.Nop())
	sess := adminSession()
	ClearOnUnauthorized(store, zerolog.Nop(), nil)(context.Background(), &sess)
	if len(backend.deleted) != 0 {
		t.Fatalf("expected no delete, got %v", backend.deleted)
	}
}

func TestLogOnUnauthorized_KeepsSession(t *testing.T) {
	backend := newStubBackend()
	store := NewSessionStore(backend, zerolog.Nop())
	ctx := context.Background()
	sess := adminSession()
	if err := store.Save(ctx, "sid-1", sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	LogOnUnauthorized(zerolog.Nop())(domain.WithSessionID(ctx, "sid-1"), &sess)
	if got, _ := store.Load(ctx, "sid-1"); got == nil {
		t.Fatal("expected session to survive")
	}
}
