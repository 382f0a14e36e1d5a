package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIBaseURL)
	assert.Equal(t, "storefront.db", cfg.StatePath)
	assert.Empty(t, cfg.Location)
	assert.Equal(t, "https://maps.googleapis.com", cfg.Geocoding.BaseURL)

	defaults := cfg.Geocoding.Defaults()
	assert.Equal(t, "Mumbai", defaults.City)
	assert.Equal(t, "Maharashtra", defaults.State)
	assert.Equal(t, "400001", defaults.ZipCode)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STOREFRONT_API_BASE_URL", "https://shop.example.com")
	t.Setenv("STOREFRONT_GEOCODING_API_KEY", "key-123")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", cfg.APIBaseURL)
	assert.Equal(t, "key-123", cfg.Geocoding.APIKey)
}

func TestParseCoordinate(t *testing.T) {
	coord, err := ParseCoordinate("19.076, 72.8777")
	require.NoError(t, err)
	assert.InDelta(t, 19.076, coord.Latitude, 1e-9)
	assert.InDelta(t, 72.8777, coord.Longitude, 1e-9)

	_, err = ParseCoordinate("19.076")
	require.Error(t, err)

	_, err = ParseCoordinate("north,east")
	require.Error(t, err)
}
