package geocoding_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	logger := slog.Default()

	t.Run("create template provider successfully", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:        geocoding.ProviderTypeTemplate,
			URITemplate: "https://maps.example.test/geocode/json?address={query}&key=k",
			Logger:      logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.NoError(t, err)
		require.NotNil(t, provider)
		_, ok := provider.(*geocoding.TemplateProvider)
		assert.True(t, ok, "expected provider to be *TemplateProvider")
	})

	t.Run("create template provider without template fails", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeTemplate,
			Logger: logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.Nil(t, provider)
		require.ErrorIs(t, err, geocoding.ErrMissingTemplate)
	})

	t.Run("create template provider without slot fails", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:        geocoding.ProviderTypeTemplate,
			URITemplate: "https://maps.example.test/geocode/json?address=",
			Logger:      logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.Nil(t, provider)
		require.ErrorIs(t, err, geocoding.ErrMissingSlot)
	})

	t.Run("create template provider with relative template fails", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:        geocoding.ProviderTypeTemplate,
			URITemplate: "geocode/json?address={query}",
			Logger:      logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.Nil(t, provider)
		require.ErrorIs(t, err, geocoding.ErrInvalidTemplate)
	})

	t.Run("create Google provider successfully", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:      geocoding.ProviderTypeGoogle,
			APIKey:    "test-api-key",
			RateLimit: 10,
			Timeout:   5 * time.Second,
			Logger:    logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.NoError(t, err)
		require.NotNil(t, provider)
		_, ok := provider.(*geocoding.GoogleProvider)
		assert.True(t, ok, "expected provider to be *GoogleProvider")
	})

	t.Run("create Google provider without API key fails", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:      geocoding.ProviderTypeGoogle,
			APIKey:    "",
			RateLimit: 10,
			Logger:    logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.Error(t, err)
		require.Nil(t, provider)
		assert.Contains(t, err.Error(), "API key is required for Google provider")
	})

	t.Run("create Google provider without rate limit", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderTypeGoogle,
			APIKey: "test-api-key",
			Logger: logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.NoError(t, err)
		require.NotNil(t, provider)
	})

	t.Run("unsupported provider type", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderType("nominatim"),
			Logger: logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.Error(t, err)
		require.Nil(t, provider)
		assert.Contains(t, err.Error(), "unsupported provider type: nominatim")
	})

	t.Run("empty provider type", func(t *testing.T) {
		config := geocoding.ProviderConfig{
			Type:   geocoding.ProviderType(""),
			Logger: logger,
		}

		provider, err := geocoding.NewProvider(config)

		require.Error(t, err)
		require.Nil(t, provider)
		assert.Contains(t, err.Error(), "unsupported provider type")
	})
}

func TestProviderType_Constants(t *testing.T) {
	assert.Equal(t, "template", string(geocoding.ProviderTypeTemplate))
	assert.Equal(t, "google", string(geocoding.ProviderTypeGoogle))
}
