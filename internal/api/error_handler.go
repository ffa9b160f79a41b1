package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/api/flash"
	"github.com/gerenciador/painel/internal/api/view"
	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/guard"
	"github.com/gerenciador/painel/internal/core/ports"
	"github.com/gerenciador/painel/internal/core/screen"
	"github.com/gerenciador/painel/internal/infrastructure/sessioncookie"
)

// errorResponse is the error envelope of the JSON endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends the browser to the login page when it has no usable session,
//     dropping the session cookie so the login page does not bounce back.
//   - Sends forbidden requests to the landing page with a notice. A request
//     forbidden on the landing page itself is signed out instead.
//   - Renders an error page (or a JSON envelope under /api/) for the rest,
//     logging unexpected errors without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger, codec *sessioncookie.Codec, sessions ports.SessionStore) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		switch {
		case errors.Is(err, domain.ErrNoSession), errors.Is(err, domain.ErrUnauthorized):
			codec.Expire(c.Response())
			_ = c.Redirect(http.StatusFound, guard.LoginPath)
			return
		case errors.Is(err, domain.ErrForbidden):
			flash.Write(c.Response(), screen.Failure(err, "Acesso negado."))
			if c.Request().URL.Path != guard.LandingPath {
				_ = c.Redirect(http.StatusFound, guard.LandingPath)
				return
			}
			if sid, _ := c.Get("sid").(string); sid != "" {
				if cerr := sessions.Clear(c.Request().Context(), sid); cerr != nil {
					log.Error().Err(cerr).Msg("clear forbidden session")
				}
			}
			codec.Expire(c.Response())
			_ = c.Redirect(http.StatusFound, guard.LoginPath)
			return
		}

		code, msg := resolveError(err, log, c)
		if strings.HasPrefix(c.Request().URL.Path, "/api/") {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}
		sess, _ := c.Get("session").(*domain.Session)
		p := view.Page{
			Title:   http.StatusText(code),
			Session: sess,
			Data:    map[string]any{"Status": code, "Message": msg},
		}
		if rerr := c.Render(code, "error.html", p); rerr != nil {
			log.Error().Err(rerr).Msg("render error page")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "não encontrado"
	case errors.Is(err, domain.ErrTransport):
		log.Warn().Err(err).Str("path", c.Path()).Msg("remote api unreachable")
		return http.StatusBadGateway, "serviço indisponível"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "erro interno"
}
