package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	DataAPI DataAPIConfig
	Session SessionConfig
	Redis   RedisConfig
}

type DataAPIConfig struct {
	BaseURL string        `env:"DATA_API_URL,     default=http://localhost:3000"`
	Timeout time.Duration `env:"DATA_API_TIMEOUT, default=10s"`
}

type SessionConfig struct {
	// TTL is the fixed session lifetime. Sessions are not sliding-renewed by
	// access; re-login is the only way to extend one.
	TTL time.Duration `env:"SESSION_TTL, default=24h"`
	// Backend selects the session store: "memory" or "redis".
	Backend string `env:"SESSION_BACKEND, default=memory"`
}

type RedisConfig struct {
	Addr    string        `env:"REDIS_ADDR,    default=localhost:6379"`
	DB      int           `env:"REDIS_DB,      default=0"`
	Timeout time.Duration `env:"REDIS_TIMEOUT, default=5s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
