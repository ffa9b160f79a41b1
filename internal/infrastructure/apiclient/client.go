// Package apiclient talks to the remote REST API on behalf of a session.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// UnauthorizedFunc is called whenever the API answers 401 to an authenticated
// request.
type UnauthorizedFunc func(ctx context.Context, s *domain.Session)

// Config captures the settings shared by every client the factory hands out.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport is the base round tripper. nil means http.DefaultTransport.
	Transport http.RoundTripper
	// Instrument wraps the base transport, typically with metrics.
	Instrument     func(http.RoundTripper) http.RoundTripper
	OnUnauthorized UnauthorizedFunc
}

// Factory builds API clients bound to one session each.
type Factory struct {
	base           *url.URL
	timeout        time.Duration
	transport      http.RoundTripper
	onUnauthorized UnauthorizedFunc
	log            zerolog.Logger
}

func NewFactory(cfg Config, log zerolog.Logger) (*Factory, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q: invalid", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if cfg.Instrument != nil {
		transport = cfg.Instrument(transport)
	}
	return &Factory{
		base:           base,
		timeout:        timeout,
		transport:      transport,
		onUnauthorized: cfg.OnUnauthorized,
		log:            log,
	}, nil
}

var _ ports.APIFactory = (*Factory)(nil)

// ForSession returns a client that authenticates as s. A nil or token-less
// session yields a client that sends requests without credentials.
func (f *Factory) ForSession(_ context.Context, s *domain.Session) ports.API {
	transport := f.transport
	if s.Authenticated() {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.Token, TokenType: "Bearer"}),
			Base:   f.transport,
		}
	}
	return &Client{
		base:           f.base,
		http:           &http.Client{Transport: transport, Timeout: f.timeout},
		session:        s,
		onUnauthorized: f.onUnauthorized,
		log:            f.log,
	}
}

// Ping reports whether the API host answers at all. Any HTTP status counts as
// reachable.
func (f *Factory) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, f.base.String()+"/", nil)
	if err != nil {
		return err
	}
	resp, err := (&http.Client{Transport: f.transport, Timeout: f.timeout}).Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	resp.Body.Close()
	return nil
}

// Client is the remote API as seen by one session.
type Client struct {
	base           *url.URL
	http           *http.Client
	session        *domain.Session
	onUnauthorized UnauthorizedFunc
	log            zerolog.Logger
}

var _ ports.API = (*Client)(nil)

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base.String() + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			c.unauthorized(ctx)
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	// Some endpoints answer 2xx with an empty body.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) unauthorized(ctx context.Context) {
	if !c.session.Authenticated() {
		return
	}
	c.log.Warn().Int64("user_id", c.session.User.ID).Msg("api rejected session token")
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx, c.session)
	}
}

// decodeError turns a non-2xx response into an *APIError. The API reports
// problems in a "message" field that is either a string or a list of strings.
func decodeError(resp *http.Response) *domain.APIError {
	apiErr := &domain.APIError{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Message) == 0 {
		return apiErr
	}
	var single string
	if err := json.Unmarshal(payload.Message, &single); err == nil {
		apiErr.Message = single
		return apiErr
	}
	var list []string
	if err := json.Unmarshal(payload.Message, &list); err == nil {
		apiErr.Message = strings.Join(list, "; ")
	}
	return apiErr
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
