package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/waypoint/internal/models"
)

// Repository reads address records from and writes geocode results to delimited text files.
type Repository struct {
	delimiter     string
	skipMalformed bool
	log           *slog.Logger
}

type Interface interface {
	LoadAddresses(ctx context.Context, path string) ([]models.AddressRecord, int, error)
	SaveResults(ctx context.Context, path string, results []models.GeocodeResult) error
}

// NewRepository creates a new instance of Repository with the provided delimiter.
// When skipMalformed is false, a line with fewer than three fields aborts loading.
// It returns a pointer to the newly created Repository.
func NewRepository(delimiter string, skipMalformed bool, log *slog.Logger) *Repository {
	return &Repository{delimiter: delimiter, skipMalformed: skipMalformed, log: log}
}
