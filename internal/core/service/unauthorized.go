package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
)

// ClearOnUnauthorized returns a 401 reaction that clears the session stored
// under the request's session id, so the next guarded request goes to the
// login page. cleared, when set, runs after each successful clear.
func ClearOnUnauthorized(sessions ports.SessionStore, log zerolog.Logger, cleared func()) func(context.Context, *domain.Session) {
	return func(ctx context.Context, s *domain.Session) {
		sid := domain.SessionIDFromContext(ctx)
		if sid == "" {
			return
		}
		if err := sessions.Clear(ctx, sid); err != nil {
			log.Error().Err(err).Msg("clear session after 401")
			return
		}
		if cleared != nil {
			cleared()
		}
		log.Info().Int64("user_id", s.User.ID).Msg("session cleared after 401")
	}
}

// LogOnUnauthorized returns a 401 reaction that only logs; the stored
// session survives.
func LogOnUnauthorized(log zerolog.Logger) func(context.Context, *domain.Session) {
	return func(_ context.Context, s *domain.Session) {
		log.Warn().Int64("user_id", s.User.ID).Msg("api rejected session token")
	}
}
