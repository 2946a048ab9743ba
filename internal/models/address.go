package models

// AddressRecord represents one parsed line of the input file.
type AddressRecord struct {
	StreetAddress string // StreetAddress is the street part, e.g. "1 Main St".
	City          string // City is matched literally against the provider's formatted address.
	State         string // State is matched literally against the provider's formatted address.
}
