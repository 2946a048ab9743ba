package repository

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// fieldsPerRecord is the number of leading fields that make up an address record.
const fieldsPerRecord = 3

// maxLineSize bounds a single input line.
const maxLineSize = 1024 * 1024

// ErrMalformedLine is returned when a line has fewer than three fields and skipping is disabled.
var ErrMalformedLine = errors.New("malformed address line")

// LoadAddresses opens the file at path and reads address records from it.
// It returns the records in file order and the number of malformed lines skipped.
// A file that cannot be opened aborts the load.
func (r *Repository) LoadAddresses(ctx context.Context, path string) ([]models.AddressRecord, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	records, skipped, err := r.ReadAddresses(ctx, file)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	r.log.InfoContext(ctx, "Address records loaded", "path", path, "records", len(records), "skipped", skipped)

	return records, skipped, nil
}

// ReadAddresses parses one address record per line of src.
//
// Each line is split on the delimiter; the first three fields are the street address,
// city and state, further fields are ignored. A leading byte order mark is removed and
// line endings may be LF or CRLF. Lines with fewer than three fields, blank lines
// included, are skipped with a warning or abort the read, depending on the repository.
func (r *Repository) ReadAddresses(ctx context.Context, src io.Reader) ([]models.AddressRecord, int, error) {
	scanner := bufio.NewScanner(transform.NewReader(src, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	var (
		records []models.AddressRecord
		skipped int
		lineNo  int
	)

	for scanner.Scan() {
		lineNo++
		fields := strings.Split(scanner.Text(), r.delimiter)

		if len(fields) < fieldsPerRecord {
			if !r.skipMalformed {
				return nil, 0, fmt.Errorf("%w: line %d has %d of %d fields",
					ErrMalformedLine, lineNo, len(fields), fieldsPerRecord)
			}

			r.log.WarnContext(ctx, "Skipping malformed address line",
				"line", lineNo,
				"fields", len(fields),
				"content", scanner.Text(),
			)
			skipped++
			continue
		}

		records = append(records, models.AddressRecord{
			StreetAddress: fields[0],
			City:          fields[1],
			State:         fields[2],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to scan line %d: %w", lineNo+1, err)
	}

	return records, skipped, nil
}

// SaveResults creates (or truncates) the file at path and writes results to it.
func (r *Repository) SaveResults(ctx context.Context, path string, results []models.GeocodeResult) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	if err = r.WriteResults(file, results); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	r.log.InfoContext(ctx, "Geocode results saved", "path", path, "records", len(results))

	return nil
}

// WriteResults writes one "address<delim>latitude<delim>longitude" line per result.
// Missing coordinates are written as empty fields, so every line has three columns.
func (r *Repository) WriteResults(dst io.Writer, results []models.GeocodeResult) error {
	writer := bufio.NewWriter(dst)

	for _, result := range results {
		line := strings.Join([]string{result.Address, result.Latitude, result.Longitude}, r.delimiter)
		if _, err := writer.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to write result line: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush results: %w", err)
	}

	return nil
}
