package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/api/metrics"
	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
	"github.com/gerenciador/painel/internal/infrastructure/sessioncookie"
)

// Context keys set by Session.
const (
	KeySID     = "sid"
	KeySession = "session"
	KeyLoading = "session_loading"
)

// Session resolves the browser's session from its cookie and the store. A
// store failure leaves the request in the loading state instead of treating
// the browser as signed out.
func Session(codec *sessioncookie.Codec, store ports.SessionStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := codec.Read(c.Request())
			if sid == "" {
				return next(c)
			}

			ctx := domain.WithSessionID(c.Request().Context(), sid)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set(KeySID, sid)

			sess, err := store.Load(ctx, sid)
			if err != nil {
				log.Warn().Err(err).Msg("session store unavailable")
				metrics.SessionOperationsTotal.WithLabelValues("load_error").Inc()
				c.Set(KeyLoading, true)
				return next(c)
			}
			if sess != nil {
				c.Set(KeySession, sess)
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session resolved for c, or nil.
func CurrentSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(KeySession).(*domain.Session)
	return sess
}

func sessionLoading(c echo.Context) bool {
	loading, _ := c.Get(KeyLoading).(bool)
	return loading
}
