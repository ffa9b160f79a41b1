package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/api/flash"
	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
	"github.com/gerenciador/painel/internal/core/screen"
)

const usersPath = "/users"

// UsersHandler serves the admin's user management screen.
type UsersHandler struct {
	apis ports.APIFactory
	log  zerolog.Logger
}

func NewUsersHandler(apis ports.APIFactory, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{apis: apis, log: log}
}

type usersPage struct {
	Query  screen.UserQuery
	Users  []domain.User
	Form   screen.NewUserForm
	Errors map[string]string
}

// mount lists users with the request's query. An invalid query falls back
// to the defaults with a warning.
func (h *UsersHandler) mount(c echo.Context) (*screen.UsersScreen, screen.Notice, error) {
	sess, err := ctxSession(c)
	if err != nil {
		return nil, screen.Notice{}, err
	}
	ctx := c.Request().Context()
	s := screen.NewUsersScreen(h.apis.ForSession(ctx, sess), h.log)

	var n screen.Notice
	q, err := screen.ParseUserQuery(c.QueryParams(), sess.User)
	if err != nil {
		n = screen.Warning("Filtro inválido; exibindo a lista padrão.")
		q = screen.DefaultUserQuery(sess.User)
	}
	if err := s.Mount(ctx, sess, q); err != nil {
		if escalated(err) {
			return nil, screen.Notice{}, err
		}
		return s, screen.Failure(err, "Erro ao carregar usuários."), nil
	}
	return s, n, nil
}

func (h *UsersHandler) renderList(c echo.Context, status int, s *screen.UsersScreen, form screen.NewUserForm, errs map[string]string, n screen.Notice) error {
	form.Password = ""
	data := usersPage{Query: s.Query, Users: s.Users(), Form: form, Errors: errs}
	return render(c, status, "users.html", page(c, "Usuários", "users", data), n)
}

// List handles GET /users.
func (h *UsersHandler) List(c echo.Context) error {
	s, n, err := h.mount(c)
	if err != nil {
		return err
	}
	return h.renderList(c, http.StatusOK, s, screen.NewUserForm{}, nil, n)
}

// Create handles POST /users. The new user is a regular user managed by the
// signed-in admin.
func (h *UsersHandler) Create(c echo.Context) error {
	s, _, err := h.mount(c)
	if err != nil {
		return err
	}
	var form screen.NewUserForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	n, err := s.Create(c.Request().Context(), form)
	if err != nil {
		if escalated(err) {
			return err
		}
		return h.renderList(c, statusFor(err), s, form, formErrors(err), n)
	}
	flash.Write(c.Response(), n)
	return c.Redirect(http.StatusFound, usersPath)
}

// Delete handles POST /users/:id/delete.
func (h *UsersHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if !confirmed(c) {
		return settle(c, screen.Warning(msgNotConfirmed), nil, usersPath)
	}
	ctx := c.Request().Context()
	n, err := screen.NewUsersScreen(h.apis.ForSession(ctx, sess), h.log).Delete(ctx, id)
	return settle(c, n, err, usersPath)
}
