package geocoding

import (
	"net/url"
	"strings"

	"github.com/UnknownOlympus/waypoint/internal/models"
)

// QuerySlot marks where the composed query is placed in a URI template.
const QuerySlot = "{query}"

// legacyQuerySlot is the positional placeholder used by older configuration files.
const legacyQuerySlot = "{0}"

// queryConnector joins words and address components in a query.
const queryConnector = "+"

// BuildQuery composes the query string for a record: the street address, city and state
// joined with "+", with spaces inside each component turned into "+" as well.
// Reserved characters are percent-encoded so they cannot break the surrounding URI.
func BuildQuery(record models.AddressRecord) string {
	return strings.Join([]string{
		url.QueryEscape(record.StreetAddress),
		url.QueryEscape(record.City),
		url.QueryEscape(record.State),
	}, queryConnector)
}

// ExpandTemplate substitutes query into every query slot of template.
func ExpandTemplate(template, query string) string {
	expanded := strings.ReplaceAll(template, QuerySlot, query)
	return strings.ReplaceAll(expanded, legacyQuerySlot, query)
}

// hasQuerySlot reports whether template contains a slot for the query.
func hasQuerySlot(template string) bool {
	return strings.Contains(template, QuerySlot) || strings.Contains(template, legacyQuerySlot)
}

