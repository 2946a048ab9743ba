package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/UnknownOlympus/waypoint/internal/models"
)

// Observer is notified after every resolved or failed record, in input order.
type Observer func(index int, result models.GeocodeResult, outcome Outcome)

// Resolver geocodes address records one at a time, classifying every reply and
// pausing between requests. Per-record failures are absorbed into empty results.
type Resolver struct {
	log          *slog.Logger       // Logger for logging resolver activities
	provider     geocoding.Provider // Geocoding provider for external geocoding services
	providerName string             // Name of the provider for metrics labeling
	metrics      *metrics.Metrics   // Metrics for tracking resolver performance
	pacer        Pacer              // Pacer called after every record
	observer     Observer           // Observer for progress reporting, may be nil
}

// NewResolver creates a new instance of Resolver.
// It takes a logger, a geocoding provider, the provider name for metrics, metrics for
// monitoring and the pacer called after each record. It returns a pointer to the
// newly created Resolver.
func NewResolver(
	log *slog.Logger,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	pacer Pacer,
) *Resolver {
	return &Resolver{
		log:          log,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
		pacer:        pacer,
	}
}

// WithObserver sets the observer notified after each record and returns the resolver.
func (rs *Resolver) WithObserver(observer Observer) *Resolver {
	rs.observer = observer
	return rs
}

// Run resolves records sequentially and returns one result per record, in input order,
// along with the run counters.
//
// Run only stops early when ctx is done. It then returns the results of the records
// finished so far and the context error; the record in flight is not recorded.
func (rs *Resolver) Run(ctx context.Context, records []models.AddressRecord) ([]models.GeocodeResult, models.RunSummary, error) {
	summary := models.RunSummary{TotalRecords: len(records)}
	results := make([]models.GeocodeResult, 0, len(records))

	rs.log.InfoContext(ctx, "Resolving address records", "records", len(records), "provider", rs.providerName)

	for idx, record := range records {
		if err := ctx.Err(); err != nil {
			return results, summary, err
		}

		outcome := rs.lookup(ctx, record)
		if err := ctx.Err(); err != nil {
			rs.log.WarnContext(ctx, "Run interrupted", "record", idx+1, "address", record.StreetAddress)
			return results, summary, err
		}

		result := rs.apply(ctx, idx, record, outcome)
		results = append(results, result)
		if outcome.Failed() {
			summary.FailureCount++
		}

		if rs.observer != nil {
			rs.observer(idx, result, outcome)
		}

		if err := rs.pacer.Pause(ctx); err != nil {
			return results, summary, err
		}
	}

	rs.log.InfoContext(ctx, "Resolving finished", "records", summary.TotalRecords, "failures", summary.FailureCount)

	return results, summary, nil
}

// lookup performs one request and classifies its reply.
func (rs *Resolver) lookup(ctx context.Context, record models.AddressRecord) Outcome {
	startTime := time.Now()
	resp, err := rs.provider.Geocode(ctx, record)
	rs.metrics.RequestSeconds.WithLabelValues(rs.providerName).Observe(time.Since(startTime).Seconds())

	return classify(record, resp, err)
}

// apply turns an outcome into the record's result, logging and counting failures.
func (rs *Resolver) apply(ctx context.Context, idx int, record models.AddressRecord, outcome Outcome) models.GeocodeResult {
	switch outcome.Kind {
	case KindNone:
		rs.metrics.RecordsProcessed.WithLabelValues(metrics.StatusSuccess).Inc()
		rs.log.DebugContext(ctx, "Record resolved",
			"record", idx+1,
			"address", record.StreetAddress,
			"lat", outcome.Candidate.Latitude,
			"lng", outcome.Candidate.Longitude,
		)

		return models.GeocodeResult{
			Address:   record.StreetAddress,
			Latitude:  outcome.Candidate.Latitude,
			Longitude: outcome.Candidate.Longitude,
		}
	case KindNoMatch:
		rs.log.WarnContext(ctx, "No candidate in requested city",
			"record", idx+1,
			"address", record.StreetAddress,
			"match", matchKey(record),
			"status", outcome.Status,
		)
	case KindBadStatus:
		rs.log.WarnContext(ctx, "Geocoding API returned non-OK status",
			"record", idx+1,
			"address", record.StreetAddress,
			"status", outcome.Status,
		)
	case KindTransport, KindEmptyBody, KindMalformed:
		rs.log.ErrorContext(ctx, "Failed to geocode",
			"record", idx+1,
			"address", record.StreetAddress,
			"kind", outcome.Kind.String(),
			"error", outcome.Err,
		)
	}

	rs.metrics.RecordsProcessed.WithLabelValues(metrics.StatusFailure).Inc()
	rs.metrics.Failures.WithLabelValues(outcome.Kind.String()).Inc()

	return models.FailedResult(record.StreetAddress)
}
