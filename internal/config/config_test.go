package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HACKPOINT_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "HackPoint API", cfg.AppName)
	require.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, 30*time.Second, cfg.ScoreboardCacheTTL)
	require.Equal(t, "hackpoint", cfg.EventChannelBase)
	require.Equal(t, "*", cfg.CORSAllowOrigins)
}

func TestLoadCORSAllowOriginsOverride(t *testing.T) {
	t.Setenv("HACKPOINT_JWT_SECRET", "secret")
	t.Setenv("HACKPOINT_CORS_ALLOW_ORIGINS", "https://app.hackpoint.dev")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://app.hackpoint.dev", cfg.CORSAllowOrigins)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("HACKPOINT_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDatabaseDriverNeedsURL(t *testing.T) {
	t.Setenv("HACKPOINT_JWT_SECRET", "secret")
	t.Setenv("HACKPOINT_STORAGE_DRIVER", "postgres")
	t.Setenv("HACKPOINT_DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("HACKPOINT_DATABASE_URL", "postgres://localhost:5432/hackpoint")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("HACKPOINT_JWT_SECRET", "secret")
	t.Setenv("HACKPOINT_STORAGE_DRIVER", "etcd")

	_, err := Load()
	require.Error(t, err)
}
