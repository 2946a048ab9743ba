package geocoding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/models"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TemplateProvider implements the Provider interface by calling a Google-compatible
// geocoding endpoint built from a configured URI template.
type TemplateProvider struct {
	client   HTTPClient   // HTTP client for making requests
	template string       // URI template with a query slot
	log      *slog.Logger // Logger for logging operations
}

// templateResponse represents the JSON response of the geocoding endpoint.
// Coordinates are kept as json.Number so they are written out exactly as received.
type templateResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat json.Number `json:"lat"`
				Lng json.Number `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Errors returned while constructing a TemplateProvider.
var (
	ErrMissingTemplate = errors.New("URI template is required for template provider")
	ErrMissingSlot     = errors.New("URI template has no query slot")
	ErrInvalidTemplate = errors.New("URI template is not an absolute URL")
)

// NewTemplateProvider creates a template provider using an HTTP client with the given timeout.
// A zero timeout leaves requests without a deadline.
func NewTemplateProvider(template string, timeout time.Duration, log *slog.Logger) (*TemplateProvider, error) {
	return NewTemplateProviderWithClient(&http.Client{Timeout: timeout}, template, log)
}

// NewTemplateProviderWithClient creates a template provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewTemplateProviderWithClient(client HTTPClient, template string, log *slog.Logger) (*TemplateProvider, error) {
	if err := validateTemplate(template); err != nil {
		return nil, err
	}

	return &TemplateProvider{client: client, template: template, log: log}, nil
}

func validateTemplate(template string) error {
	if template == "" {
		return ErrMissingTemplate
	}

	if !hasQuerySlot(template) {
		return fmt.Errorf("%w: expected %s", ErrMissingSlot, QuerySlot)
	}

	parsed, err := url.Parse(ExpandTemplate(template, "probe"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return ErrInvalidTemplate
	}

	return nil
}

// Geocode requests the endpoint for one record and decodes the reply.
//
// Errors wrap one of ErrTransport (request failed, non-2xx status or no body),
// ErrEmptyBody or ErrMalformedResponse. A decoded response is returned whatever its
// status; the caller decides whether it resolves the record.
func (tp *TemplateProvider) Geocode(ctx context.Context, record models.AddressRecord) (*Response, error) {
	query := BuildQuery(record)
	tp.log.DebugContext(ctx, "Geocoding using URI template", "query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ExpandTemplate(tp.template, query), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := tp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute geocoding request: %w", ErrTransport, err)
	}
	if resp.Body == nil {
		return nil, fmt.Errorf("%w: response has no body", ErrTransport)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		tp.log.ErrorContext(ctx, "Geocoding API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: geocoding API returned status %d", ErrTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}

	tp.log.DebugContext(ctx, "Geocoding raw response", "body", string(body))

	var decoded templateResponse
	if err = json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	response := &Response{
		Status:     decoded.Status,
		Candidates: make([]Candidate, 0, len(decoded.Results)),
	}
	for _, result := range decoded.Results {
		response.Candidates = append(response.Candidates, Candidate{
			FormattedAddress: result.FormattedAddress,
			Latitude:         result.Geometry.Location.Lat.String(),
			Longitude:        result.Geometry.Location.Lng.String(),
		})
	}

	return response, nil
}
