package handler

import (
	"errors"
	"net/http"
	"strings"

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

type AuthHandler struct {
	authService ports.AuthService
	codec       *sessioncookie.Codec
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, codec *sessioncookie.Codec, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, codec: codec, log: log}
}

type loginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type registerRequest struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

type loginPage struct {
	Email string
}

type registerPage struct {
	Name   string
	Email  string
	Errors map[string]string
}

// LoginForm handles GET /login. A signed-in browser goes straight to its
// landing page.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	if sess, err := ctxSession(c); err == nil {
		return c.Redirect(http.StatusFound, sess.LandingPath())
	}
	return c.Render(http.StatusOK, "login.html", page(c, "Entrar", "login", loginPage{}))
}

// Login handles POST /login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	ctx := c.Request().Context()

	if old := ctxSID(c); old != "" {
		if err := h.authService.Logout(ctx, old); err != nil {
			h.log.Warn().Err(err).Msg("could not drop previous session")
		}
	}

	sid, sess, err := h.authService.Login(ctx, domain.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		status := http.StatusUnauthorized
		msg := "E-mail ou senha inválidos."
		switch {
		case errors.Is(err, domain.ErrValidation):
			status = http.StatusUnprocessableEntity
			msg = "Informe e-mail e senha."
		case errors.Is(err, domain.ErrTransport), errors.Is(err, domain.ErrMalformedSession):
			status = http.StatusBadGateway
			msg = "Não foi possível entrar agora. Tente novamente."
		}
		h.log.Warn().Err(err).Str("email", req.Email).Msg("login failed")
		return render(c, status, "login.html", page(c, "Entrar", "login", loginPage{Email: req.Email}),
			screen.Failure(err, msg))
	}

	if err := h.codec.Write(c.Response(), sid); err != nil {
		return err
	}
	metrics.SessionOperationsTotal.WithLabelValues("login").Inc()
	return c.Redirect(http.StatusFound, sess.LandingPath())
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", page(c, "Cadastro", "register", registerPage{}))
}

// Register handles POST /register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	in := domain.RegisterInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	}
	data := registerPage{Name: in.Name, Email: in.Email}

	if err := c.Validate(in); err != nil {
		data.Errors = formErrors(err)
		return render(c, http.StatusUnprocessableEntity, "register.html", page(c, "Cadastro", "register", data),
			screen.Failure(err, "Por favor, preencha todos os campos."))
	}
	if err := h.authService.Register(c.Request().Context(), in); err != nil {
		h.log.Warn().Err(err).Str("email", in.Email).Msg("register failed")
		return render(c, statusFor(err), "register.html", page(c, "Cadastro", "register", data),
			screen.Failure(err, "Erro ao registrar. Tente novamente."))
	}

	flash.Write(c.Response(), screen.Success("Registro realizado com sucesso! Faça login."))
	return c.Redirect(http.StatusFound, guard.LoginPath)
}

// Logout handles POST /logout. It always ends on the login page.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid := ctxSID(c); sid != "" {
		if err := h.authService.Logout(c.Request().Context(), sid); err != nil {
			h.log.Error().Err(err).Msg("logout: clear session")
		}
		metrics.SessionOperationsTotal.WithLabelValues("logout").Inc()
	}
	h.codec.Expire(c.Response())
	return c.Redirect(http.StatusFound, guard.LoginPath)
}

// Home handles GET / by sending the browser to its role's landing page.
func (h *AuthHandler) Home(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, sess.LandingPath())
}
