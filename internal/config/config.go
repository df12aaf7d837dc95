package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig     `env-prefix:"MEMOSYNC_"`
	HTTP    HTTPConfig    `env-prefix:"MEMOSYNC_"`
	Storage StorageConfig `env-prefix:"MEMOSYNC_"`
	UI      UIConfig      `env-prefix:"MEMOSYNC_"`
}

type AppConfig struct {
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	Pretty   bool   `env:"LOG_PRETTY" env-default:"false"`
}

type HTTPConfig struct {
	Addr            string        `env:"ADDR" env-default:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" env-default:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
	// RateLimit is the number of mutating requests allowed per client IP per
	// minute. Zero disables limiting.
	RateLimit int `env:"RATE_LIMIT" env-default:"120"`
	// TrustProxy keys rate limiting on X-Forwarded-For. Set it only when a
	// reverse proxy in front of the server overwrites that header.
	TrustProxy     bool     `env:"TRUST_PROXY" env-default:"false"`
	OriginPatterns []string `env:"WS_ORIGINS" env-separator:","`
}

// Storage backends.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageMemory   = "memory"
)

type StorageConfig struct {
	Driver       string `env:"STORAGE" env-default:"sqlite"`
	DBPath       string `env:"DB_PATH" env-default:"memosync.db"`
	DatabaseURL  string `env:"DATABASE_URL"`
	PingAttempts uint   `env:"DB_PING_ATTEMPTS" env-default:"5"`

	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" env-default:"memosync:"`
}

type UIConfig struct {
	LoadingDelay  time.Duration `env:"LOADING_DELAY" env-default:"1200ms"`
	ToastDuration time.Duration `env:"TOAST_DURATION" env-default:"3s"`
	TooltipDelay  time.Duration `env:"TOOLTIP_DELAY" env-default:"600ms"`
}

// Parse reads configuration from the environment, after loading a .env
// file when one exists. When path is set the file is read first and the
// environment overrides it.
func Parse(path string) (Config, error) {
	godotenv.Load()

	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case StorageSQLite, StorageRedis, StorageMemory:
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("MEMOSYNC_DATABASE_URL is required for the postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage %q (want sqlite, postgres, redis or memory)", c.Storage.Driver)
	}
	return nil
}
