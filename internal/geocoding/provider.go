package geocoding

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/waypoint/internal/models"
)

// StatusOK is the top-level status of a successful geocoding response.
const StatusOK = "OK"

// Provider is an interface that defines a method for geocoding an address record.
// The Geocode method returns the provider's response as is; deciding whether the
// response resolves the record is left to the caller.
type Provider interface {
	Geocode(ctx context.Context, record models.AddressRecord) (*Response, error)
}

// Response is the provider-neutral form of a geocoding API reply.
type Response struct {
	Status     string      // Status is the API's top-level status, e.g. "OK" or "ZERO_RESULTS".
	Candidates []Candidate // Candidates are the results in the order the API returned them.
}

// Candidate is one entry of the API's results list.
type Candidate struct {
	FormattedAddress string // FormattedAddress is the API's human-readable address.
	Latitude         string // Latitude in the textual form the API sent it.
	Longitude        string // Longitude in the textual form the API sent it.
}

// Errors returned by providers. They classify why no usable response was obtained.
var (
	ErrTransport         = errors.New("transport failure")
	ErrEmptyBody         = errors.New("geocoding API returned empty body")
	ErrMalformedResponse = errors.New("geocoding API returned malformed response")
)
