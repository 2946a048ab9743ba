package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"googlemaps.github.io/maps"
)

// statusZeroResults is reported when the Google client returns no results.
const statusZeroResults = "ZERO_RESULTS"

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps geocoding services.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider with the given client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode looks the record up with the Google Maps client and maps the results onto a Response.
// The client reports non-OK statuses other than ZERO_RESULTS as errors; those are returned
// wrapped in ErrTransport. An empty result list is reported with status ZERO_RESULTS.
func (gp *GoogleProvider) Geocode(ctx context.Context, record models.AddressRecord) (*Response, error) {
	address := strings.Join([]string{record.StreetAddress, record.City, record.State}, " ")
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	geocodeResponse, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to geocode address: %w", ErrTransport, err)
	}

	if len(geocodeResponse) == 0 {
		return &Response{Status: statusZeroResults}, nil
	}

	response := &Response{
		Status:     StatusOK,
		Candidates: make([]Candidate, 0, len(geocodeResponse)),
	}
	for _, result := range geocodeResponse {
		response.Candidates = append(response.Candidates, Candidate{
			FormattedAddress: result.FormattedAddress,
			Latitude:         strconv.FormatFloat(result.Geometry.Location.Lat, 'f', -1, 64),
			Longitude:        strconv.FormatFloat(result.Geometry.Location.Lng, 'f', -1, 64),
		})
	}

	return response, nil
}
