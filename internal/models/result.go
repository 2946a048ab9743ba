package models

// GeocodeResult holds the resolved coordinates for one AddressRecord.
// Latitude and Longitude are either both set or both empty.
type GeocodeResult struct {
	Address   string // Address is the original street address from the input.
	Latitude  string // Latitude as returned by the provider, empty on failure.
	Longitude string // Longitude as returned by the provider, empty on failure.
}

// FailedResult returns a result with empty coordinates for the given address.
func FailedResult(address string) GeocodeResult {
	return GeocodeResult{Address: address}
}

// Resolved reports whether the result carries coordinates.
func (r GeocodeResult) Resolved() bool {
	return r.Latitude != "" && r.Longitude != ""
}

// RunSummary accumulates the counters reported at the end of a run.
type RunSummary struct {
	TotalRecords int // TotalRecords is the number of records produced by the loader.
	FailureCount int // FailureCount is the number of records that took a failure branch.
	Skipped      int // Skipped is the number of malformed input lines that were dropped.
}
