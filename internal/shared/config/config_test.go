package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, ":8080", cfg.GetServerAddress())

	assert.Contains(t, cfg.Database.DSN, "dbname=chamber_db")
	assert.Contains(t, cfg.Database.DSN, "sslmode=disable")
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)

	assert.Equal(t, 45*time.Minute, cfg.Redis.WizardSessionTTL)
	assert.Equal(t, 400*time.Millisecond, cfg.Wizard.StepDelay)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_PREFIX", "/chamber")
	t.Setenv("API_VERSION", "v2")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_WHITELISTED_IPS", "10.0.0.1, 10.0.0.2")
	t.Setenv("WIZARD_STEP_DELAY", "0s")
	t.Setenv("JWT_EXPIRES_IN", "900")

	cfg := Load()

	assert.Equal(t, "/chamber/v2", cfg.GetAPIBasePath())
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.RateLimit.WhitelistedIPs)
	assert.Zero(t, cfg.Wizard.StepDelay)
	assert.Equal(t, 15*time.Minute, cfg.JWT.JWTExpiresIn)
}

func TestKafkaEnabled(t *testing.T) {
	cfg := Load()
	assert.False(t, cfg.KafkaEnabled(), "disabled without brokers")

	t.Setenv("KAFKA_BROKERS", "localhost:9092,localhost:9093")
	cfg = Load()
	assert.True(t, cfg.KafkaEnabled())
	assert.Len(t, cfg.Kafka.Brokers, 2)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	assert.True(t, Load().IsProduction())

	t.Setenv("GIN_MODE", "debug")
	cfg := Load()
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.IsDevelopment())
}
