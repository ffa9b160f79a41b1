package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"

	PolicyClearSession = "clear-session"
	PolicyNoop         = "noop"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	API     APIConfig
	Postal  PostalConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	Secret  string `env:"SESSION_SECRET"`
	Backend string `env:"SESSION_BACKEND, default=memory"`
	Cookie  string `env:"SESSION_COOKIE,  default=painel_session"`
}

type APIConfig struct {
	BaseURL            string        `env:"API_BASE_URL,        default=http://localhost:3005"`
	Timeout            time.Duration `env:"API_TIMEOUT,         default=15s"`
	UnauthorizedPolicy string        `env:"UNAUTHORIZED_POLICY, default=clear-session"`
}

type PostalConfig struct {
	BaseURL  string        `env:"POSTAL_BASE_URL,  default=https://viacep.com.br"`
	Timeout  time.Duration `env:"POSTAL_TIMEOUT,   default=5s"`
	CacheTTL time.Duration `env:"POSTAL_CACHE_TTL, default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=painel"`
}

// RedisConfig is optional: with an empty address the postal cache is off and
// the redis session backend cannot be selected.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Validate rejects combinations the process cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Session.Backend {
	case BackendMemory, BackendMongo:
	case BackendRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("SESSION_BACKEND=redis requires REDIS_ADDR"))
		}
	default:
		errs = append(errs, fmt.Errorf("SESSION_BACKEND %q: want memory, redis or mongo", c.Session.Backend))
	}
	switch c.API.UnauthorizedPolicy {
	case PolicyClearSession, PolicyNoop:
	default:
		errs = append(errs, fmt.Errorf("UNAUTHORIZED_POLICY %q: want clear-session or noop", c.API.UnauthorizedPolicy))
	}
	if c.Session.Secret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("SESSION_SECRET is required outside development"))
	}
	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig.
// A .env file in the working directory is loaded first when present; real
// environment variables win over it.
func Load() *Config {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.Session.Secret == "" && cfg.IsDevelopment() {
		cfg.Session.Secret = "dev-only-session-secret"
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("config: invalid configuration: %v", err))
	}
	return &cfg
}
