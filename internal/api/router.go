package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/gerenciador/painel/docs"
	"github.com/gerenciador/painel/internal/api/handler"
	"github.com/gerenciador/painel/internal/api/middleware"
	"github.com/gerenciador/painel/internal/core/ports"
	"github.com/gerenciador/painel/internal/infrastructure/sessioncookie"
)

// Deps is everything the router wires into handlers and middleware.
type Deps struct {
	Log      zerolog.Logger
	Renderer echo.Renderer
	Codec    *sessioncookie.Codec
	Sessions ports.SessionStore
	Auth     ports.AuthService
	APIs     ports.APIFactory
	Postal   ports.PostalLookup
	// Health lists the dependencies checked by the readiness probe.
	Health       map[string]handler.Pinger
	SecureCookie bool
	// Registerer receives the inbound request metrics. nil means the
	// default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Codec, d.Sessions)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "painel",
		Registerer: d.Registerer,
	}))
	e.Use(echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "form:_csrf",
		CookieName:     "painel_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   d.SecureCookie,
		CookieSameSite: http.SameSiteLaxMode,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/swagger/*"
		},
	}))
	e.Use(middleware.Session(d.Codec, d.Sessions, d.Log))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Codec, d.Log)
	profileHandler := handler.NewProfileHandler(d.APIs, d.Auth, d.Codec, d.Log)
	usersHandler := handler.NewUsersHandler(d.APIs, d.Log)
	clientesHandler := handler.NewClientesHandler(d.APIs, d.Postal, d.Log)
	tasksHandler := handler.NewTasksHandler(d.APIs, d.Log)
	postalHandler := handler.NewPostalHandler(d.Postal)

	authed := middleware.Guard(false)
	admin := middleware.Guard(true)

	// --- Public ---
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)

	// --- Any signed-in user ---
	e.GET("/", authHandler.Home, authed)
	e.GET("/profile", profileHandler.Show, authed)
	e.POST("/profile", profileHandler.Update, authed)
	e.GET("/clientes/:id", clientesHandler.Show, authed)
	e.GET("/api/cep/:cep", postalHandler.Lookup, authed)

	tasks := e.Group("/tasks", authed)
	tasks.GET("", tasksHandler.List)
	tasks.POST("", tasksHandler.Create)
	tasks.POST("/:id/toggle", tasksHandler.Toggle)
	tasks.POST("/:id/edit", tasksHandler.Edit)
	tasks.POST("/:id/delete", tasksHandler.Delete)

	// --- Admin only ---
	users := e.Group("/users", admin)
	users.GET("", usersHandler.List)
	users.POST("", usersHandler.Create)
	users.POST("/:id/delete", usersHandler.Delete)
	users.GET("/:id/edit", profileHandler.ShowUser)
	users.POST("/:id/edit", profileHandler.UpdateUser)

	clientes := e.Group("/clientes", admin)
	clientes.GET("", clientesHandler.List)
	clientes.POST("", clientesHandler.Create)
	clientes.POST("/:id/delete", clientesHandler.Delete)
	clientes.GET("/:id/edit", clientesHandler.EditForm)
	clientes.POST("/:id/edit", clientesHandler.Edit)

	// --- Ops (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Health)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
