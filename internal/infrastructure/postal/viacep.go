// Package postal resolves Brazilian postal codes through the ViaCEP service.
package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
)

const (
	DefaultBaseURL = "https://viacep.com.br"
	defaultTimeout = 5 * time.Second
	defaultTTL     = 24 * time.Hour
)

// Observer is told the outcome of every lookup: hit, miss, cached or error.
type Observer func(result string)

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
	// Cache is optional; without it every lookup goes to the service.
	Cache     ports.PostalCache
	Transport http.RoundTripper
	Observe   Observer
}

// Client looks codes up at {BaseURL}/ws/{digits}/json/.
type Client struct {
	baseURL string
	http    *http.Client
	cache   ports.PostalCache
	ttl     time.Duration
	observe Observer
	log     zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	observe := cfg.Observe
	if observe == nil {
		observe = func(string) {}
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout, Transport: cfg.Transport},
		cache:   cfg.Cache,
		ttl:     ttl,
		observe: observe,
		log:     log,
	}
}

var _ ports.PostalLookup = (*Client)(nil)

// viaCEPResponse mirrors the service payload. "erro" has been served both as a
// boolean and as the string "true".
type viaCEPResponse struct {
	domain.Address
	Erro json.RawMessage `json:"erro"`
}

func (r viaCEPResponse) notFound() bool {
	switch strings.Trim(string(r.Erro), `" `) {
	case "true":
		return true
	}
	return false
}

// Lookup resolves cep. Non-digits are stripped; anything that is not eight
// digits is reported as not found without a request.
func (c *Client) Lookup(ctx context.Context, cep string) (*domain.Address, error) {
	digits := domain.DigitsOnly(cep)
	if len(digits) != 8 {
		c.observe("miss")
		return nil, domain.ErrPostalNotFound
	}

	if c.cache != nil {
		if addr, err := c.cache.Get(ctx, digits); err != nil {
			c.log.Warn().Err(err).Str("cep", digits).Msg("postal cache read failed")
		} else if addr != nil {
			c.observe("cached")
			return addr, nil
		}
	}

	addr, err := c.fetch(ctx, digits)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, digits, *addr, c.ttl); err != nil {
			c.log.Warn().Err(err).Str("cep", digits).Msg("postal cache write failed")
		}
	}
	return addr, nil
}

func (c *Client) fetch(ctx context.Context, digits string) (*domain.Address, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/ws/%s/json/", c.baseURL, digits), nil)
	if err != nil {
		return nil, fmt.Errorf("postal request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe("error")
		c.log.Warn().Err(err).Str("cep", digits).Msg("postal lookup failed")
		return nil, fmt.Errorf("%w: postal lookup: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	// The service answers 400 for malformed codes.
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound {
		c.observe("miss")
		return nil, domain.ErrPostalNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.observe("error")
		c.log.Warn().Int("status", resp.StatusCode).Str("cep", digits).Msg("postal lookup failed")
		return nil, &domain.APIError{Status: resp.StatusCode}
	}

	var payload viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.observe("error")
		return nil, fmt.Errorf("postal decode: %w", err)
	}
	if payload.notFound() {
		c.observe("miss")
		return nil, domain.ErrPostalNotFound
	}

	c.observe("hit")
	addr := payload.Address
	return &addr, nil
}
