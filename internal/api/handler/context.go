package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gerenciador/painel/internal/api/flash"
	"github.com/gerenciador/painel/internal/api/view"
	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/screen"
)

const (
	msgNotConfirmed = "Exclusão não confirmada."
	confirmValue    = "yes"
)

// ctxSession returns the session injected by the Session middleware. Guarded
// routes never see a nil session; a missing one is reported as ErrNoSession.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get("session").(*domain.Session)
	if !sess.Authenticated() {
		return nil, domain.ErrNoSession
	}
	return sess, nil
}

func ctxSID(c echo.Context) string {
	sid, _ := c.Get("sid").(string)
	return sid
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "invalid id")
	}
	return id, nil
}

// page builds the template data shared by every screen and consumes the
// pending flash notice.
func page(c echo.Context, title, active string, data any) view.Page {
	n, _ := flash.ReadAndClear(c.Response(), c.Request())
	csrf, _ := c.Get("csrf").(string)
	sess, _ := c.Get("session").(*domain.Session)
	return view.Page{
		Title:   title,
		Active:  active,
		Session: sess,
		Notice:  n,
		CSRF:    csrf,
		Data:    data,
	}
}

// render draws a page, letting notice replace any pending flash.
func render(c echo.Context, status int, tpl string, p view.Page, notice screen.Notice) error {
	if !notice.IsZero() {
		p.Notice = notice
	}
	return c.Render(status, tpl, p)
}

// escalated reports whether err is an access failure the error handler
// resolves with a redirect instead of an inline notice.
func escalated(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrNoSession) ||
		errors.Is(err, domain.ErrForbidden)
}

// settle finishes a mutation: the notice travels in a flash cookie to the page
// at location. Access failures are left to the error handler.
func settle(c echo.Context, n screen.Notice, err error, location string) error {
	if escalated(err) {
		return err
	}
	flash.Write(c.Response(), n)
	return c.Redirect(http.StatusFound, location)
}

// formErrors returns the per-field messages carried by err, if any.
func formErrors(err error) map[string]string {
	var fe *screen.FormError
	if errors.As(err, &fe) {
		return fe.Fields
	}
	return nil
}

// statusFor picks the status of a re-rendered form.
func statusFor(err error) int {
	if errors.Is(err, domain.ErrValidation) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}

func confirmed(c echo.Context) bool {
	return c.FormValue("confirm") == confirmValue
}
