package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFallsBackOnBlank(t *testing.T) {
	t.Setenv("JOURNEY_TEST_KEY", "   ")
	assert.Equal(t, "fallback", Get("JOURNEY_TEST_KEY", "fallback"))

	t.Setenv("JOURNEY_TEST_KEY", " value ")
	assert.Equal(t, "value", Get("JOURNEY_TEST_KEY", "fallback"))
}

func TestGetIntAndFloatIgnoreGarbage(t *testing.T) {
	t.Setenv("JOURNEY_TEST_INT", "abc")
	assert.Equal(t, 7, GetInt("JOURNEY_TEST_INT", 7))

	t.Setenv("JOURNEY_TEST_INT", "42")
	assert.Equal(t, 42, GetInt("JOURNEY_TEST_INT", 7))

	t.Setenv("JOURNEY_TEST_FLOAT", "1.5")
	assert.InDelta(t, 1.5, GetFloat("JOURNEY_TEST_FLOAT", 0), 1e-9)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PLACE_CATALOG", "Postgres")
	t.Setenv("PORT", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.PlaceCatalog)
	assert.Equal(t, 3000, cfg.SearchRadiusMeters)
}
