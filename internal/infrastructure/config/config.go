package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	JWTSecret  string        `env:"JWT_SECRET"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=8h"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`

	Storage   StorageConfig
	Bootstrap BootstrapConfig
}

// StorageConfig selects and parameterizes the snapshot backend.
type StorageConfig struct {
	// Backend is one of: file, redis, mongo.
	Backend string `env:"STORAGE_BACKEND, default=file"`
	// Dir is the file backend's data directory.
	Dir string `env:"STORAGE_DIR, default=data"`
	// BlockedDates lists extra non-schedulable days as 2006-01-02,
	// comma-separated.
	BlockedDates []string `env:"BLOCKED_DATES"`

	Redis RedisConfig
	Mongo MongoConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=fieldservice"`
}

// BootstrapConfig seeds the first admin on an empty snapshot.
type BootstrapConfig struct {
	AdminName     string `env:"BOOTSTRAP_ADMIN_NAME,  default=Administrator"`
	AdminEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	AdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
