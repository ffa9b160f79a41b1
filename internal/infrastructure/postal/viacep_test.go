package postal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/core/domain"
)

type memCache struct {
	items map[string]domain.Address
	ttl   time.Duration
}

func (m *memCache) Get(_ context.Context, cep string) (*domain.Address, error) {
	a, ok := m.items[cep]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *memCache) Set(_ context.Context, cep string, addr domain.Address, ttl time.Duration) error {
	m.items[cep] = addr
	m.ttl = ttl
	return nil
}

const se = `{"cep":"01001-000","logradouro":"Praça da Sé","complemento":"lado ímpar","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`

func TestLookup_Hit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/01001000/json/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(se))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())
	addr, err := c.Lookup(context.Background(), "01001-000")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if addr.Logradouro != "Praça da Sé" || addr.Cidade != "São Paulo" || addr.UF != "SP" || addr.Bairro != "Sé" {
		t.Fatalf("unexpected address: %+v", addr)
	}
}

func TestLookup_ErroFlag(t *testing.T) {
	for _, body := range []string{`{"erro": true}`, `{"erro": "true"}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		_, err := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop()).Lookup(context.Background(), "99999999")
		srv.Close()
		if !errors.Is(err, domain.ErrPostalNotFound) {
			t.Fatalf("body %s: expected ErrPostalNotFound, got %v", body, err)
		}
	}
}

func TestLookup_ShortCodeNeverCallsService(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop())
	if _, err := c.Lookup(context.Background(), "1234"); !errors.Is(err, domain.ErrPostalNotFound) {
		t.Fatalf("expected ErrPostalNotFound, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("service should not be called")
	}
}

func TestLookup_UsesCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(se))
	}))
	defer srv.Close()

	cache := &memCache{items: map[string]domain.Address{}}
	var results []string
	c := NewClient(Config{BaseURL: srv.URL, Cache: cache, CacheTTL: time.Hour, Observe: func(r string) { results = append(results, r) }}, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := c.Lookup(context.Background(), "01001000"); err != nil {
			t.Fatalf("lookup %d: %v", i, err)
		}
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected one remote call, got %d", calls)
	}
	if cache.ttl != time.Hour {
		t.Fatalf("expected ttl to be passed through, got %v", cache.ttl)
	}
	if len(results) != 3 || results[0] != "hit" || results[2] != "cached" {
		t.Fatalf("unexpected observed results %v", results)
	}
}

func TestLookup_MissNotCached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"erro": true}`))
	}))
	defer srv.Close()

	cache := &memCache{items: map[string]domain.Address{}}
	c := NewClient(Config{BaseURL: srv.URL, Cache: cache}, zerolog.Nop())
	_, _ = c.Lookup(context.Background(), "99999999")
	if len(cache.items) != 0 {
		t.Fatalf("misses must not be cached")
	}
}

func TestLookup_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	_, err := NewClient(Config{BaseURL: base}, zerolog.Nop()).Lookup(context.Background(), "01001000")
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}
