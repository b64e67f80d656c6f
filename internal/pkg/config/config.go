package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	// BackendAuto keeps the session slot in the store backend's database
	// when it has one.
	BackendAuto = "auto"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, default=dev-secret-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// StoreBackend selects where accounts, jobs and applications live:
	// memory, mongo or sqlite.
	StoreBackend string `env:"STORE_BACKEND,   default=memory"`
	// SessionBackend selects the persisted session slot: auto, memory, redis,
	// sqlite or mongo. sqlite and mongo share the store backend's database.
	SessionBackend string `env:"SESSION_BACKEND, default=auto"`
	SessionKey     string `env:"SESSION_KEY,     default=user"`

	SeedDemoData         bool `env:"SEED_DEMO_DATA,         default=true"`
	AllowDecisionChanges bool `env:"ALLOW_DECISION_CHANGES, default=true"`
	DispatcherWorkers    int  `env:"DISPATCHER_WORKERS,     default=4"`

	Mongo  MongoConfig
	Redis  RedisConfig
	SQLite SQLiteConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=data/marketplace.db"`
}

// IsDevelopment reports whether the service runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate rejects unknown backend names.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendMongo, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.SessionBackend {
	case BackendAuto, BackendMemory, BackendRedis:
	case BackendSQLite, BackendMongo:
		if c.SessionBackend != c.StoreBackend {
			return fmt.Errorf("config: SESSION_BACKEND %q requires STORE_BACKEND %q", c.SessionBackend, c.SessionBackend)
		}
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	return nil
}

// SessionSlot resolves SessionBackend. With auto, a SQLite or MongoDB store
// also holds the session slot so it survives a restart; the memory store
// keeps the slot in memory.
func (c *Config) SessionSlot() string {
	if c.SessionBackend != BackendAuto {
		return c.SessionBackend
	}
	switch c.StoreBackend {
	case BackendSQLite, BackendMongo:
		return c.StoreBackend
	default:
		return BackendMemory
	}
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
