package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/api"
	"github.com/gerenciador/painel/internal/api/handler"
	"github.com/gerenciador/painel/internal/api/metrics"
	"github.com/gerenciador/painel/internal/api/view"
	"github.com/gerenciador/painel/internal/core/ports"
	"github.com/gerenciador/painel/internal/core/service"
	"github.com/gerenciador/painel/internal/infrastructure/apiclient"
	"github.com/gerenciador/painel/internal/infrastructure/db/memory"
	"github.com/gerenciador/painel/internal/infrastructure/db/mongo"
	"github.com/gerenciador/painel/internal/infrastructure/db/redis"
	"github.com/gerenciador/painel/internal/infrastructure/postal"
	"github.com/gerenciador/painel/internal/infrastructure/sessioncookie"
	"github.com/gerenciador/painel/internal/pkg/config"
	"github.com/gerenciador/painel/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Env: cfg.Env})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("painel stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	health := map[string]handler.Pinger{}
	var closers []func(context.Context) error

	// --- Redis is shared by the postal cache and, optionally, sessions ---
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		switch {
		case err == nil:
			rdb = client
			closers = append(closers, func(context.Context) error { return client.Close() })
			health["redis"] = handler.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
		case cfg.Session.Backend == config.BackendRedis:
			return err
		default:
			log.Warn().Err(err).Msg("redis unavailable, postal cache disabled")
		}
	}

	// --- Session backend ---
	var backend ports.SessionBackend
	switch cfg.Session.Backend {
	case config.BackendRedis:
		b := redis.NewSessionBackend(rdb)
		backend = b
		health["sessions"] = b
	case config.BackendMongo:
		conn, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		closers = append(closers, conn.Close)
		b := mongo.NewSessionBackend(conn.DB)
		if err := b.EnsureIndexes(ctx); err != nil {
			return err
		}
		backend = b
		health["sessions"] = b
	default:
		b := memory.NewSessionBackend()
		backend = b
		health["sessions"] = b
	}
	store := service.NewSessionStore(backend, log.With().Str("component", "sessions").Logger())
	log.Info().Str("backend", cfg.Session.Backend).Msg("session store ready")

	// --- Postal lookups ---
	postalCfg := postal.Config{
		BaseURL:  cfg.Postal.BaseURL,
		Timeout:  cfg.Postal.Timeout,
		CacheTTL: cfg.Postal.CacheTTL,
		Observe:  metrics.ObservePostal,
	}
	if rdb != nil {
		postalCfg.Cache = redis.NewPostalCache(rdb)
	}
	lookup := postal.NewClient(postalCfg, log.With().Str("component", "postal").Logger())

	// --- Remote API ---
	apis, err := apiclient.NewFactory(apiclient.Config{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		Instrument:     metrics.InstrumentUpstream,
		OnUnauthorized: unauthorizedPolicy(cfg.API.UnauthorizedPolicy, store, log),
	}, log.With().Str("component", "api").Logger())
	if err != nil {
		return err
	}
	health["api"] = apis

	renderer, err := view.New()
	if err != nil {
		return err
	}

	codec := sessioncookie.NewCodec(cfg.Session.Cookie, cfg.Session.Secret, !cfg.IsDevelopment())
	e := api.NewRouter(api.Deps{
		Log:          log,
		Renderer:     renderer,
		Codec:        codec,
		Sessions:     store,
		Auth:         service.NewAuthService(apis, store, log.With().Str("component", "auth").Logger()),
		APIs:         apis,
		Postal:       lookup,
		Health:       health,
		SecureCookie: !cfg.IsDevelopment(),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("api", cfg.API.BaseURL).Msg("painel listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	for _, closeFn := range closers {
		if err := closeFn(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("close dependency")
		}
	}
	return nil
}

// unauthorizedPolicy picks the 401 reaction configured by UNAUTHORIZED_POLICY.
func unauthorizedPolicy(policy string, store ports.SessionStore, log zerolog.Logger) apiclient.UnauthorizedFunc {
	if policy == config.PolicyNoop {
		return service.LogOnUnauthorized(log)
	}
	return service.ClearOnUnauthorized(store, log, func() {
		metrics.SessionOperationsTotal.WithLabelValues("cleared_on_401").Inc()
	})
}
