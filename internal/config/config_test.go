package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CACHE_TTL", "")
	t.Setenv("CACHE_CLUSTER_INVALIDATION", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.CleanupInterval)
	assert.False(t, cfg.Cache.Cluster)
	assert.Equal(t, "knotpad:cache:invalidate", cfg.Cache.InvalidationChannel)
	assert.Equal(t, "knotpad.changes", cfg.Events.Topic)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("GO_ENV", "production")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("CACHE_CLEANUP_INTERVAL", "30")
	t.Setenv("CACHE_CLUSTER_INVALIDATION", "true")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 30*time.Second, cfg.Cache.CleanupInterval)
	assert.True(t, cfg.Cache.Cluster)
}

func TestGetEnvAsDuration_Invalid(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("CACHE_TTL", time.Minute))
}
