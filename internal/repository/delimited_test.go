package repository_test

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/repository"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAddresses(t *testing.T) {
	logger := slog.Default()
	ctx := t.Context()

	tests := []struct {
		name    string
		input   string
		want    []models.AddressRecord
		skipped int
	}{
		{
			name:  "tab delimited lines",
			input: "1 Main St\tSpringfield\tIL\n2 Oak Ave\tChicago\tIL\n",
			want: []models.AddressRecord{
				{StreetAddress: "1 Main St", City: "Springfield", State: "IL"},
				{StreetAddress: "2 Oak Ave", City: "Chicago", State: "IL"},
			},
		},
		{
			name:  "no trailing newline and CRLF endings",
			input: "1 Main St\tSpringfield\tIL\r\n2 Oak Ave\tChicago\tIL",
			want: []models.AddressRecord{
				{StreetAddress: "1 Main St", City: "Springfield", State: "IL"},
				{StreetAddress: "2 Oak Ave", City: "Chicago", State: "IL"},
			},
		},
		{
			name:  "byte order mark is stripped",
			input: "\ufeff1 Main St\tSpringfield\tIL\n",
			want: []models.AddressRecord{
				{StreetAddress: "1 Main St", City: "Springfield", State: "IL"},
			},
		},
		{
			name:  "extra fields are ignored and content is not validated",
			input: "1 Main St\t\tIL\tUSA\t62701\n",
			want: []models.AddressRecord{
				{StreetAddress: "1 Main St", City: "", State: "IL"},
			},
		},
		{
			name:  "malformed and blank lines are skipped",
			input: "1 Main St\tSpringfield\n\n2 Oak Ave\tChicago\tIL\n",
			want: []models.AddressRecord{
				{StreetAddress: "2 Oak Ave", City: "Chicago", State: "IL"},
			},
			skipped: 2,
		},
		{
			name:  "empty input",
			input: "",
		},
	}

	repo := repository.NewRepository("\t", true, logger)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, skipped, err := repo.ReadAddresses(ctx, strings.NewReader(tt.input))

			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, records); diff != "" {
				t.Errorf("ReadAddresses() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.skipped, skipped)
		})
	}
}

func TestReadAddresses_FailOnMalformed(t *testing.T) {
	repo := repository.NewRepository("\t", false, slog.Default())

	records, _, err := repo.ReadAddresses(t.Context(),
		strings.NewReader("1 Main St\tSpringfield\tIL\n2 Oak Ave\tChicago\n"))

	require.Nil(t, records)
	require.ErrorIs(t, err, repository.ErrMalformedLine)
	assert.Contains(t, err.Error(), "line 2 has 2 of 3 fields")
}

func TestReadAddresses_CustomDelimiter(t *testing.T) {
	repo := repository.NewRepository(";", true, slog.Default())

	records, skipped, err := repo.ReadAddresses(t.Context(), strings.NewReader("1 Main St;Springfield;IL\n"))

	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, []models.AddressRecord{{StreetAddress: "1 Main St", City: "Springfield", State: "IL"}}, records)
}

func TestLoadAddresses(t *testing.T) {
	defer filet.CleanUp(t)
	logger := slog.Default()
	repo := repository.NewRepository("\t", true, logger)

	t.Run("reads file", func(t *testing.T) {
		file := filet.TmpFile(t, "", "1 Main St\tSpringfield\tIL\nbroken\n")

		records, skipped, err := repo.LoadAddresses(t.Context(), file.Name())

		require.NoError(t, err)
		assert.Equal(t, []models.AddressRecord{{StreetAddress: "1 Main St", City: "Springfield", State: "IL"}}, records)
		assert.Equal(t, 1, skipped)
	})

	t.Run("missing file", func(t *testing.T) {
		dir := filet.TmpDir(t, "")

		records, _, err := repo.LoadAddresses(t.Context(), filepath.Join(dir, "absent.tsv"))

		require.Nil(t, records)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open input file")
	})
}

func TestWriteResults(t *testing.T) {
	repo := repository.NewRepository("\t", true, slog.Default())
	results := []models.GeocodeResult{
		{Address: "1 Main St", Latitude: "39.1", Longitude: "-89.6"},
		{Address: "2 Oak Ave"},
		models.FailedResult("3 Pine Rd"),
	}

	var buf bytes.Buffer
	require.NoError(t, repo.WriteResults(&buf, results))

	want := "1 Main St\t39.1\t-89.6\n2 Oak Ave\t\t\n3 Pine Rd\t\t\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteResults() mismatch (-want +got):\n%s", diff)
	}
}

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteResults_WriterError(t *testing.T) {
	repo := repository.NewRepository("\t", true, slog.Default())

	err := repo.WriteResults(failingWriter{}, []models.GeocodeResult{{Address: "1 Main St"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestSaveResults(t *testing.T) {
	defer filet.CleanUp(t)
	repo := repository.NewRepository(";", true, slog.Default())

	t.Run("writes and truncates", func(t *testing.T) {
		file := filet.TmpFile(t, "", "stale content that must disappear\n")

		err := repo.SaveResults(t.Context(), file.Name(), []models.GeocodeResult{
			{Address: "1 Main St", Latitude: "39.1", Longitude: "-89.6"},
			{Address: "2 Oak Ave"},
		})

		require.NoError(t, err)
		assert.True(t, filet.FileSays(t, file.Name(), []byte("1 Main St;39.1;-89.6\n2 Oak Ave;;\n")))
	})

	t.Run("unwritable path", func(t *testing.T) {
		dir := filet.TmpDir(t, "")

		err := repo.SaveResults(t.Context(), filepath.Join(dir, "missing", "out.tsv"), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create output file")
	})
}
