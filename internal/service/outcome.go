package service

import (
	"errors"
	"slices"
	"strings"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/UnknownOlympus/waypoint/internal/models"
)

// FailureKind tells why a record could not be resolved.
type FailureKind int

const (
	KindNone      FailureKind = iota // KindNone marks a resolved record.
	KindTransport                    // KindTransport: no usable HTTP response.
	KindEmptyBody                    // KindEmptyBody: the response body was empty.
	KindMalformed                    // KindMalformed: the body or the matched location could not be used.
	KindNoMatch                      // KindNoMatch: no candidate lies in the requested city and state.
	KindBadStatus                    // KindBadStatus: the API status was not OK.
)

func (k FailureKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindEmptyBody:
		return "empty-body"
	case KindMalformed:
		return "malformed"
	case KindNoMatch:
		return "no-match"
	case KindBadStatus:
		return "bad-status"
	default:
		return "unknown"
	}
}

// Outcome is the classification of a single geocoding attempt.
type Outcome struct {
	Kind      FailureKind         // Kind is KindNone on success.
	Status    string              // Status is the API status, when a response was decoded.
	Candidate geocoding.Candidate // Candidate is the matched candidate on success.
	Err       error               // Err is the provider error for transport-level failures.
}

// Failed reports whether the attempt took a failure branch.
func (o Outcome) Failed() bool {
	return o.Kind != KindNone
}

// matchKey returns the "{city}, {state}" fragment a candidate's formatted address must contain.
func matchKey(record models.AddressRecord) string {
	return record.City + ", " + record.State
}

// classify turns a provider reply into an Outcome. The checks run in a fixed order and the
// first failing one wins: transport, empty body, malformed body, city/state match, status.
// The status is checked after the match, so a matching candidate of a non-OK reply is dropped.
func classify(record models.AddressRecord, resp *geocoding.Response, err error) Outcome {
	switch {
	case errors.Is(err, geocoding.ErrEmptyBody):
		return Outcome{Kind: KindEmptyBody, Err: err}
	case errors.Is(err, geocoding.ErrMalformedResponse):
		return Outcome{Kind: KindMalformed, Err: err}
	case err != nil:
		return Outcome{Kind: KindTransport, Err: err}
	case resp == nil:
		return Outcome{Kind: KindEmptyBody, Err: geocoding.ErrEmptyBody}
	}

	key := matchKey(record)
	idx := slices.IndexFunc(resp.Candidates, func(c geocoding.Candidate) bool {
		return strings.Contains(c.FormattedAddress, key)
	})
	if idx < 0 {
		return Outcome{Kind: KindNoMatch, Status: resp.Status}
	}

	if resp.Status != geocoding.StatusOK {
		return Outcome{Kind: KindBadStatus, Status: resp.Status}
	}

	candidate := resp.Candidates[idx]
	if candidate.Latitude == "" || candidate.Longitude == "" {
		return Outcome{Kind: KindMalformed, Status: resp.Status, Candidate: candidate}
	}

	return Outcome{Kind: KindNone, Status: resp.Status, Candidate: candidate}
}
