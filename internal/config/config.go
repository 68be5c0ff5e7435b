package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers selectable at startup. The memory driver keeps everything
// in process and is the fallback for local development and tests.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMemory   = "memory"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	StorageDriver      string
	DatabaseURL        string
	RedisURL           string
	NATSURL            string
	EventChannelBase   string
	JWTSecret          string
	ScoreboardCacheTTL time.Duration
	CORSAllowOrigins   string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HACKPOINT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "HackPoint API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("storage.driver", StorageDriverMemory)
	v.SetDefault("event.channel_base", "hackpoint")
	v.SetDefault("scoreboard.cache_ttl", "30s")
	v.SetDefault("cors.allow_origins", "*")

	ttlString := v.GetString("scoreboard.cache_ttl")
	if ttlString == "" {
		ttlString = "30s"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid scoreboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		StorageDriver:      strings.ToLower(v.GetString("storage.driver")),
		DatabaseURL:        v.GetString("database.url"),
		RedisURL:           v.GetString("redis.url"),
		NATSURL:            v.GetString("nats.url"),
		EventChannelBase:   v.GetString("event.channel_base"),
		JWTSecret:          v.GetString("jwt.secret"),
		ScoreboardCacheTTL: ttl,
		CORSAllowOrigins:   v.GetString("cors.allow_origins"),
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres, StorageDriverSQLite:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("database url must be provided for the %s driver", cfg.StorageDriver)
		}
	case StorageDriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
