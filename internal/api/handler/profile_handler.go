package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/api/flash"
	"github.com/gerenciador/painel/internal/api/metrics"
	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/guard"
	"github.com/gerenciador/painel/internal/core/ports"
	"github.com/gerenciador/painel/internal/core/screen"
	"github.com/gerenciador/painel/internal/infrastructure/sessioncookie"
)

// ProfileHandler serves the signed-in user's own profile and, for admins,
// the profile of any user.
type ProfileHandler struct {
	apis        ports.APIFactory
	authService ports.AuthService
	codec       *sessioncookie.Codec
	log         zerolog.Logger
}

func NewProfileHandler(apis ports.APIFactory, authService ports.AuthService, codec *sessioncookie.Codec, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{apis: apis, authService: authService, codec: codec, log: log}
}

type profilePage struct {
	User   *domain.User
	Form   screen.ProfileForm
	Errors map[string]string
	Action string
	Own    bool
}

// Show handles GET /profile.
func (h *ProfileHandler) Show(c echo.Context) error {
	return h.show(c, 0)
}

// ShowUser handles GET /users/:id/edit.
func (h *ProfileHandler) ShowUser(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	return h.show(c, id)
}

// Update handles POST /profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	return h.update(c, 0)
}

// UpdateUser handles POST /users/:id/edit.
func (h *ProfileHandler) UpdateUser(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	return h.update(c, id)
}

func (h *ProfileHandler) mount(c echo.Context, id int64) (*screen.ProfileScreen, error) {
	sess, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	ctx := c.Request().Context()
	s := screen.NewProfileScreen(h.apis.ForSession(ctx, sess), h.log)
	if err := s.Mount(ctx, sess, id); err != nil {
		return nil, err
	}
	return s, nil
}

// denied sends an admin who may not see a foreign profile back to the list.
func (h *ProfileHandler) denied(c echo.Context, id int64, err error) bool {
	if id == 0 || !errors.Is(err, domain.ErrForbidden) {
		return false
	}
	flash.Write(c.Response(), screen.Failure(err, "Você não tem permissão para ver este perfil."))
	return true
}

func (h *ProfileHandler) show(c echo.Context, id int64) error {
	s, err := h.mount(c, id)
	if err != nil {
		if h.denied(c, id, err) {
			return c.Redirect(http.StatusFound, usersPath)
		}
		return err
	}
	return h.render(c, http.StatusOK, s, s.Form(), nil, screen.Notice{})
}

func (h *ProfileHandler) update(c echo.Context, id int64) error {
	s, err := h.mount(c, id)
	if err != nil {
		if h.denied(c, id, err) {
			return c.Redirect(http.StatusFound, usersPath)
		}
		return err
	}
	var form screen.ProfileForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form = s.Bind(form)

	n, relogin, err := s.Update(c.Request().Context(), form)
	if err != nil {
		if escalated(err) {
			return err
		}
		return h.render(c, statusFor(err), s, form, formErrors(err), n)
	}
	if relogin {
		return h.relogin(c)
	}
	flash.Write(c.Response(), n)
	return c.Redirect(http.StatusFound, h.action(id))
}

// relogin ends the session after the user changed their own record.
func (h *ProfileHandler) relogin(c echo.Context) error {
	if sid := ctxSID(c); sid != "" {
		if err := h.authService.Logout(c.Request().Context(), sid); err != nil {
			h.log.Error().Err(err).Msg("profile: clear session")
		}
		metrics.SessionOperationsTotal.WithLabelValues("logout").Inc()
	}
	h.codec.Expire(c.Response())
	flash.Write(c.Response(), screen.Success("Perfil atualizado com sucesso! Faça login novamente."))
	return c.Redirect(http.StatusFound, guard.LoginPath)
}

func (h *ProfileHandler) render(c echo.Context, status int, s *screen.ProfileScreen, form screen.ProfileForm, errs map[string]string, n screen.Notice) error {
	id := int64(0)
	if !s.Own() && s.User != nil {
		id = s.User.ID
	}
	form.Password = ""
	data := profilePage{
		User:   s.User,
		Form:   form,
		Errors: errs,
		Action: h.action(id),
		Own:    s.Own(),
	}
	title, active := "Meu perfil", "profile"
	if id != 0 {
		title, active = "Perfil do usuário", "users"
	}
	return render(c, status, "profile.html", page(c, title, active, data), n)
}

func (h *ProfileHandler) action(id int64) string {
	if id == 0 {
		return guard.LandingPath
	}
	return usersPath + "/" + strconv.FormatInt(id, 10) + "/edit"
}
