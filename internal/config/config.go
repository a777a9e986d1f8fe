package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Bank source names accepted by BANK_SOURCE.
const (
	BankSourceStatic   = "static"
	BankSourceFile     = "file"
	BankSourcePostgres = "postgres"
)

// App holds core runtime configuration.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"quiz-duel"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Game     Game
	Bank     Bank
	Postgres Postgres
	Redis    Redis
}

// Game groups the gameplay constants: nothing about the rules is a magic
// literal at a call site.
type Game struct {
	TurnDuration   time.Duration `env:"TURN_SECONDS" envDefault:"30s"`
	RoundWinTarget int           `env:"ROUND_WIN_TARGET" envDefault:"3"`
}

// Bank selects where the question bank is loaded from.
type Bank struct {
	Source       string        `env:"BANK_SOURCE" envDefault:"static"`
	FilePath     string        `env:"BANK_FILE"`
	CacheEnabled bool          `env:"BANK_CACHE_ENABLED" envDefault:"false"`
	CacheTTL     time.Duration `env:"BANK_CACHE_TTL" envDefault:"5m"`
}

// Postgres captures connection info for the SQL bank source. Only required
// when BANK_SOURCE=postgres.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:"localhost"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER"`
	Password string `env:"PG_PASSWORD"`
	Database string `env:"PG_DATABASE"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds bank cache configuration. Only used when BANK_CACHE_ENABLED.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
}

// Load parses environment variables into App config and validates the
// combinations that cannot be expressed as struct tags.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	switch cfg.Bank.Source {
	case BankSourceStatic:
	case BankSourceFile:
		if cfg.Bank.FilePath == "" {
			return nil, fmt.Errorf("BANK_FILE is required when BANK_SOURCE=file")
		}
	case BankSourcePostgres:
		if cfg.Postgres.User == "" || cfg.Postgres.Database == "" {
			return nil, fmt.Errorf("PG_USER and PG_DATABASE are required when BANK_SOURCE=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown BANK_SOURCE %q", cfg.Bank.Source)
	}

	if cfg.Game.RoundWinTarget < 1 {
		return nil, fmt.Errorf("ROUND_WIN_TARGET must be at least 1")
	}
	if cfg.Game.TurnDuration <= 0 {
		return nil, fmt.Errorf("TURN_SECONDS must be positive")
	}

	return cfg, nil
}
