package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
)

// AuthService runs login, registration and logout against the remote API and
// keeps the session store in step.
type AuthService struct {
	apis     ports.APIFactory
	sessions ports.SessionStore
	newID    func() string
	log      zerolog.Logger
}

func NewAuthService(apis ports.APIFactory, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{apis: apis, sessions: sessions, newID: uuid.NewString, log: log}
}

var _ ports.AuthService = (*AuthService)(nil)

// Login authenticates against the API and stores the resulting session under a
// fresh session id, which the caller binds to the browser.
func (s *AuthService) Login(ctx context.Context, in domain.LoginInput) (string, *domain.Session, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return "", nil, fmt.Errorf("login: %w: email and password are required", domain.ErrValidation)
	}

	res, err := s.apis.ForSession(ctx, nil).Login(ctx, in)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if res.AccessToken == "" || !res.Role.Valid() {
		return "", nil, fmt.Errorf("login: %w: incomplete login response", domain.ErrMalformedSession)
	}

	sess := domain.NewSession(*res)
	sid := s.newID()
	if err := s.sessions.Save(ctx, sid, sess); err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Int64("user_id", sess.User.ID).Str("role", string(sess.User.Role)).Msg("user logged in")
	return sid, &sess, nil
}

// Register creates an account. The API decides the role.
func (s *AuthService) Register(ctx context.Context, in domain.RegisterInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return fmt.Errorf("register: %w: name, email and password are required", domain.ErrValidation)
	}
	if err := s.apis.ForSession(ctx, nil).Register(ctx, in); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	s.log.Info().Str("email", in.Email).Msg("user registered")
	return nil
}

// Logout drops the session stored under sid.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.sessions.Clear(ctx, sid)
}
