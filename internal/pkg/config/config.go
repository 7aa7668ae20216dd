package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=0s"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	NoticeWorkers int `env:"NOTICE_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=career_connect"`
}

type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR,         default=localhost:6379"`
	Password    string        `env:"REDIS_PASSWORD"`
	DB          int           `env:"REDIS_DB,           default=0"`
	IdentityTTL time.Duration `env:"IDENTITY_CACHE_TTL, default=1m"`
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads a .env file when one exists and then processes environment
// variables with go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return FromLookuper(ctx, envconfig.OsLookuper())
}

// FromLookuper builds a Config from an arbitrary variable source.
func FromLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for main packages: it panics on error.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return cfg
}
