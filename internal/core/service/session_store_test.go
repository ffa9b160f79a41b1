package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubBackend struct {
	records map[string]ports.SessionRecord
	getErr  error
	deleted []string
}

func newStubBackend() *stubBackend {
	return &stubBackend{records: make(map[string]ports.SessionRecord)}
}

func (b *stubBackend) Get(_ context.Context, key string) (*ports.SessionRecord, error) {
	if b.getErr != nil {
		return nil, b.getErr
	}
	rec, ok := b.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (b *stubBackend) Put(_ context.Context, key string, rec ports.SessionRecord) error {
	b.records[key] = rec
	return nil
}

func (b *stubBackend) Delete(_ context.Context, key string) error {
	delete(b.records, key)
	b.deleted = append(b.deleted, key)
	return nil
}

func adminSession() domain.Session {
	return domain.Session{Token: "tok-1", User: domain.SessionUser{ID: 7, Email: "ana@example.com", Role: domain.RoleAdmin}}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestSessionStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewSessionStore(newStubBackend(), zerolog.Nop())
	ctx := context.Background()

	if err := store.Save(ctx, "sid-1", adminSession()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx, "sid-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || got.Token != "tok-1" || got.User.ID != 7 || !got.IsAdmin() {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestSessionStore_SaveOverwrites(t *testing.T) {
	store := NewSessionStore(newStubBackend(), zerolog.Nop())
	ctx := context.Background()

	_ = store.Save(ctx, "sid-1", adminSession())
	second := domain.Session{Token: "tok-2", User: domain.SessionUser{ID: 9, Role: domain.RoleUser}}
	if err := store.Save(ctx, "sid-1", second); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ := store.Load(ctx, "sid-1")
	if got.Token != "tok-2" || got.IsAdmin() {
		t.Fatalf("expected overwritten session, got %+v", got)
	}
}

func TestSessionStore_LoadMissing(t *testing.T) {
	store := NewSessionStore(newStubBackend(), zerolog.Nop())
	got, err := store.Load(context.Background(), "nope")
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil), got (%+v, %v)", got, err)
	}
}

func TestSessionStore_LoadMalformedClears(t *testing.T) {
	cases := map[string]ports.SessionRecord{
		"bad json":     {AccessToken: "tok", User: "{not-json"},
		"missing user": {AccessToken: "tok"},
		"missing tok":  {User: `{"id":1,"role":"ADMIN"}`},
		"bad role":     {AccessToken: "tok", User: `{"id":1,"role":"ROOT"}`},
	}
	for name, rec := range cases {
		t.Run(name, func(t *testing.T) {
			backend := newStubBackend()
			key := storageKey("sid-x")
			backend.records[key] = rec
			store := NewSessionStore(backend, zerolog.Nop())

			got, err := store.Load(context.Background(), "sid-x")
			if err != nil || got != nil {
				t.Fatalf("expected (nil, nil), got (%+v, %v)", got, err)
			}
			if _, still := backend.records[key]; still {
				t.Fatalf("malformed record was not cleared")
			}
		})
	}
}

func TestSessionStore_LoadBackendError(t *testing.T) {
	backend := newStubBackend()
	backend.getErr = errors.New("connection refused")
	store := NewSessionStore(backend, zerolog.Nop())

	if _, err := store.Load(context.Background(), "sid"); err == nil {
		t.Fatalf("expected backend error to surface")
	}
	if len(backend.deleted) != 0 {
		t.Fatalf("backend failure must not clear anything")
	}
}

func TestSessionStore_Clear(t *testing.T) {
	backend := newStubBackend()
	store := NewSessionStore(backend, zerolog.Nop())
	ctx := context.Background()

	_ = store.Save(ctx, "sid-1", adminSession())
	if err := store.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := store.Load(ctx, "sid-1"); got != nil {
		t.Fatalf("expected no session after clear, got %+v", got)
	}
}

func TestSessionStore_SaveRejectsIncompleteSession(t *testing.T) {
	store := NewSessionStore(newStubBackend(), zerolog.Nop())
	err := store.Save(context.Background(), "sid", domain.Session{User: domain.SessionUser{Role: domain.RoleUser}})
	if !errors.Is(err, domain.ErrMalformedSession) {
		t.Fatalf("expected ErrMalformedSession, got %v", err)
	}
}

func TestStorageKey_HidesSessionID(t *testing.T) {
	key := storageKey("abc")
	if key == "abc" || len(key) != 64 {
		t.Fatalf("unexpected key %q", key)
	}
	if storageKey("abc") != key {
		t.Fatalf("key derivation must be deterministic")
	}
}
