package geocoding

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeTemplate represents a Google-compatible endpoint reached through a URI template.
	ProviderTypeTemplate ProviderType = "template"
	// ProviderTypeGoogle represents Google Maps geocoding through the official client.
	ProviderTypeGoogle ProviderType = "google"
)

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type        ProviderType  // Type of provider to create
	URITemplate string        // URI template (used by template provider)
	APIKey      string        // API key (used by Google provider)
	RateLimit   int           // Rate limit for requests per second (used by Google provider)
	Timeout     time.Duration // HTTP client timeout, zero means none
	Logger      *slog.Logger  // Logger for the provider
}

// NewProvider creates a geocoding provider based on the provided configuration.
// It applies the Factory pattern to decouple provider instantiation from business logic.
//
// Supported provider types:
// - "template": any Google-compatible endpoint given as a URI template
// - "google": Google Maps Geocoding API through the official client (requires API key)
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeTemplate:
		return newTemplateProvider(config)
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newTemplateProvider creates a URI template provider.
func newTemplateProvider(config ProviderConfig) (Provider, error) {
	provider, err := NewTemplateProvider(config.URITemplate, config.Timeout, config.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create template provider: %w", err)
	}

	return provider, nil
}

// newGoogleProvider creates a Google Maps geocoding provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}

	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	if config.Timeout > 0 {
		clientOpts = append(clientOpts, maps.WithHTTPClient(&http.Client{Timeout: config.Timeout}))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}
