package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/UnknownOlympus/waypoint/internal/config"
	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/UnknownOlympus/waypoint/internal/report"
	"github.com/UnknownOlympus/waypoint/internal/repository"
	"github.com/UnknownOlympus/waypoint/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app holds the process streams so commands can be driven from tests.
type app struct {
	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer
}

type runOptions struct {
	input      string
	output     string
	configFile string
	wait       bool
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "geocoder",
		Short: "batch geocoding of delimited address files",
		Long: `
geocoder reads street address, city and state records from a delimited file,
looks each one up with a Google-compatible geocoding API and writes the address
with its latitude and longitude to an output file.
`,
		SilenceUsage: true,
	}

	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.AddCommand(newRunCmd(a))

	return root
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Geocode every record of an address file",
		Long: `
Geocodes every record of the input file in order and writes one line per record
to the output file. Records that cannot be resolved keep their address with empty
coordinates. Paths that are not given as flags are asked for interactively.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "path of the delimited address file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "path of the output file, truncated if it exists")
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file (default ./geocoder.yaml if present)")
	cmd.Flags().BoolVar(&opts.wait, "wait", false, "wait for Enter before exiting")

	return cmd
}

// run resolves the paths, wires the components and geocodes the whole input file.
func (a *app) run(ctx context.Context, opts runOptions) error {
	prompted := false

	if opts.input == "" {
		path, err := a.promptPath(inputPrompt)
		if err != nil {
			return err
		}
		opts.input, prompted = path, true
	}

	if opts.output == "" {
		path, err := a.promptPath(outputPrompt)
		if err != nil {
			return err
		}
		opts.output, prompted = path, true
	}

	if prompted || opts.wait {
		defer a.waitForEnter()
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Env, a.stderr)

	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:        geocoding.ProviderType(cfg.Provider.Type),
		URITemplate: cfg.Provider.URITemplate,
		APIKey:      cfg.Provider.APIKey,
		RateLimit:   cfg.Provider.RateLimit,
		Timeout:     cfg.Provider.Timeout,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create geocoding provider: %w", err)
	}

	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.Provider.Type)

	repo := repository.NewRepository(cfg.Delimiter, cfg.Malformed == config.MalformedSkip, logger)

	records, skipped, err := repo.LoadAddresses(ctx, opts.input)
	if err != nil {
		return err
	}
	appMetrics.RecordsSkipped.Add(float64(skipped))

	tracker := newProgress(logger, a.stderr, len(records))
	resolver := service.NewResolver(
		logger,
		geoProvider,
		cfg.Provider.Type, // Provider name for metrics
		appMetrics,
		service.FixedDelay(cfg.Delay),
	).WithObserver(tracker.observe)

	results, summary, runErr := resolver.Run(ctx, records)
	tracker.finish()
	summary.Skipped = skipped

	if runErr != nil {
		logger.WarnContext(ctx, "Run stopped early, saving partial results",
			"resolved", len(results), "records", len(records), "error", runErr)
	}

	// The run context may already be canceled; the partial results are still written.
	saveCtx := context.WithoutCancel(ctx)
	if err := repo.SaveResults(saveCtx, opts.output, results); err != nil {
		return errors.Join(runErr, err)
	}

	if err := report.Print(a.stdout, summary); err != nil {
		return errors.Join(runErr, err)
	}

	if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
		logger.ErrorContext(saveCtx, "Failed to export metrics", "error", err)
		return errors.Join(runErr, err)
	}

	if runErr != nil {
		return fmt.Errorf("geocoding interrupted after %d of %d records: %w", len(results), len(records), runErr)
	}

	return nil
}
