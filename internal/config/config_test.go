package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hooks/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DSN", "SNAPSHOT_FILE", "REDIS_ADDR", "KAFKA_BROKERS", "KAFKA_TOPIC", "LOG_LEVEL"} {
		// t.Setenv registers the restore; a set-but-empty variable would
		// suppress the envconfig default, so unset it outright.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "hooks.db", cfg.DBDSN)
	assert.Equal(t, "./notifications.json", cfg.SnapshotFile)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "notifications", cfg.KafkaTopic)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "/tmp/storefront.db")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/storefront.db", cfg.DBDSN)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "localhost:9092", cfg.KafkaBrokers)
	assert.Equal(t, "debug", cfg.LogLevel)
}
