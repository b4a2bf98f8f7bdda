package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("PROVIDER_BACKEND", "")
	t.Setenv("SIMULATION_KEY", "")

	c := FromEnv()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "memory", c.StoreBackend)
	assert.Equal(t, "mariadb", c.ProviderBackend)
	assert.Equal(t, "simulationRentabilite", c.SimulationKey)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("UPSTREAM_URL", "http://bi.local")

	c := FromEnv()
	assert.Equal(t, "3000", c.Port)
	assert.Equal(t, "redis", c.StoreBackend)
	assert.Equal(t, 4, c.RedisDB)
	assert.Equal(t, "http://bi.local", c.UpstreamURL)
}

func TestFromEnv_BadIntFallsBack(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	assert.Equal(t, 0, FromEnv().RedisDB)
}
