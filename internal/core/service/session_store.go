package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
)

// SessionStore keeps one session per browser session id on top of a raw
// backend. Token and user record are one unit: a record with either half
// missing or unparsable is discarded rather than half-trusted.
type SessionStore struct {
	backend ports.SessionBackend
	log     zerolog.Logger
}

func NewSessionStore(backend ports.SessionBackend, log zerolog.Logger) *SessionStore {
	return &SessionStore{backend: backend, log: log}
}

var _ ports.SessionStore = (*SessionStore)(nil)

// Save persists s under sid, replacing whatever was there.
func (s *SessionStore) Save(ctx context.Context, sid string, sess domain.Session) error {
	if sid == "" {
		return fmt.Errorf("save session: %w", domain.ErrNoSession)
	}
	if sess.Token == "" || !sess.User.Role.Valid() {
		return fmt.Errorf("save session: %w", domain.ErrMalformedSession)
	}
	user, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("save session: encode user: %w", err)
	}
	if err := s.backend.Put(ctx, storageKey(sid), ports.SessionRecord{
		AccessToken: sess.Token,
		User:        string(user),
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load reconstructs the session stored under sid. Missing data yields
// (nil, nil); malformed data is cleared and also yields (nil, nil). Only a
// backend failure is returned as an error.
func (s *SessionStore) Load(ctx context.Context, sid string) (*domain.Session, error) {
	if sid == "" {
		return nil, nil
	}
	key := storageKey(sid)
	rec, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if rec == nil || (rec.AccessToken == "" && rec.User == "") {
		return nil, nil
	}

	sess, err := decodeRecord(*rec)
	if err != nil {
		s.log.Warn().Err(err).Msg("discarding stored session")
		if delErr := s.backend.Delete(ctx, key); delErr != nil {
			s.log.Error().Err(delErr).Msg("failed to clear malformed session")
		}
		return nil, nil
	}
	return sess, nil
}

// Clear removes the session stored under sid. Clearing an absent session is
// not an error.
func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.backend.Delete(ctx, storageKey(sid)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func decodeRecord(rec ports.SessionRecord) (*domain.Session, error) {
	if rec.AccessToken == "" || rec.User == "" {
		return nil, fmt.Errorf("%w: token and user must both be present", domain.ErrMalformedSession)
	}
	var user domain.SessionUser
	if err := json.Unmarshal([]byte(rec.User), &user); err != nil {
		return nil, errors.Join(domain.ErrMalformedSession, err)
	}
	if !user.Role.Valid() {
		return nil, fmt.Errorf("%w: role %q", domain.ErrMalformedSession, user.Role)
	}
	return &domain.Session{Token: rec.AccessToken, User: user}, nil
}

// storageKey derives the backend key from a session id so the raw cookie
// value never reaches storage.
func storageKey(sid string) string {
	sum := blake2b.Sum256([]byte(sid))
	return hex.EncodeToString(sum[:])
}
