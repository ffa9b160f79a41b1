package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gerenciador/painel/internal/api/flash"
	"github.com/gerenciador/painel/internal/api/metrics"
	"github.com/gerenciador/painel/internal/api/view"
	"github.com/gerenciador/painel/internal/core/guard"
	"github.com/gerenciador/painel/internal/core/screen"
)

const (
	// Seconds the loading placeholder waits before the browser retries.
	refreshAfter = "2"
	msgNoAccess  = "Você não tem permissão para acessar esta página."
)

// Guard evaluates the route guard on every request. It never caches a
// decision between requests.
func Guard(requiresAdmin bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := guard.Evaluate(guard.Input{
				Loading:       sessionLoading(c),
				Session:       CurrentSession(c),
				RequiresAdmin: requiresAdmin,
			})
			metrics.GuardDecisionsTotal.WithLabelValues(string(d.State)).Inc()

			switch d.Action {
			case guard.ActionPlaceholder:
				c.Response().Header().Set("Refresh", refreshAfter)
				c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
				return c.Render(http.StatusServiceUnavailable, "loading.html", view.Page{Title: "Carregando"})
			case guard.ActionRedirectLogin:
				return c.Redirect(http.StatusFound, d.Location)
			case guard.ActionRedirectLanding:
				flash.Write(c.Response(), screen.Notice{Kind: screen.NoticeError, Message: msgNoAccess})
				return c.Redirect(http.StatusFound, d.Location)
			}
			return next(c)
		}
	}
}
