package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Malformed line policies.
const (
	MalformedSkip = "skip"
	MalformedFail = "fail"
)

// Config holds the configuration settings for the batch geocoder.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Provider: Which geocoding provider to use and how to reach it.
// - Delay: The fixed pause after every geocoded record.
// - Delimiter: The field separator of both the input and the output file.
// - Malformed: What to do with input lines that have fewer than three fields.
// - Metrics: Where to export run metrics.
type Config struct {
	Env       string         `mapstructure:"env"`       // Env is the current environment: local, development, production.
	Provider  ProviderConfig `mapstructure:"provider"`  // Provider holds the geocoding provider settings.
	Delay     time.Duration  `mapstructure:"delay"`     // Delay is the pause after each record.
	Delimiter string         `mapstructure:"delimiter"` // Delimiter separates fields in input and output files.
	Malformed string         `mapstructure:"malformed"` // Malformed is either "skip" or "fail".
	Metrics   MetricsConfig  `mapstructure:"metrics"`   // Metrics holds the metrics export settings.
}

// ProviderConfig holds the settings of the geocoding provider.
type ProviderConfig struct {
	Type        string        `mapstructure:"type"`         // Type is the provider type: template or google.
	URITemplate string        `mapstructure:"uri_template"` // URITemplate is the endpoint with a {query} slot.
	APIKey      string        `mapstructure:"api_key"`      // APIKey is required by the google provider.
	RateLimit   int           `mapstructure:"rate_limit"`   // RateLimit is requests per second for the google client.
	Timeout     time.Duration `mapstructure:"timeout"`      // Timeout is the HTTP client timeout, zero means none.
}

// MetricsConfig holds the metrics export settings.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"` // Textfile is a node_exporter textfile path, empty disables export.
}

var (
	// ErrInvalidDelimiter is returned when the delimiter is empty or cannot be unquoted.
	ErrInvalidDelimiter = errors.New("invalid delimiter")
	// ErrInvalidPolicy is returned for an unknown malformed line policy.
	ErrInvalidPolicy = errors.New("invalid malformed line policy")
	// ErrNegativeDelay is returned when the pacing delay is negative.
	ErrNegativeDelay = errors.New("delay must not be negative")
)

const envPrefix = "GEOCODER"

// Load reads configuration from an optional .env file, an optional YAML file and the environment.
// If configFile is empty, geocoder.yaml is looked up in the working directory and may be absent.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	vpr := viper.New()

	if configFile != "" {
		vpr.SetConfigFile(configFile)
	} else {
		vpr.SetConfigName("geocoder")
		vpr.SetConfigType("yaml")
		vpr.AddConfigPath(".")
	}

	vpr.SetEnvPrefix(envPrefix)
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	vpr.SetDefault("env", "production")
	vpr.SetDefault("provider.type", "template")
	vpr.SetDefault("provider.uri_template", "")
	vpr.SetDefault("provider.api_key", "")
	vpr.SetDefault("provider.rate_limit", 5)
	vpr.SetDefault("provider.timeout", "0s")
	vpr.SetDefault("delay", "200ms")
	vpr.SetDefault("delimiter", `\t`)
	vpr.SetDefault("malformed", MalformedSkip)
	vpr.SetDefault("metrics.textfile", "")

	if err := vpr.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := vpr.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	delimiter, err := unquoteDelimiter(cfg.Delimiter)
	if err != nil {
		return nil, err
	}
	cfg.Delimiter = delimiter

	if cfg.Malformed != MalformedSkip && cfg.Malformed != MalformedFail {
		return nil, fmt.Errorf("%w: %q (available: skip, fail)", ErrInvalidPolicy, cfg.Malformed)
	}

	if cfg.Delay < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeDelay, cfg.Delay)
	}

	return &cfg, nil
}

// unquoteDelimiter turns escape sequences such as `\t` into the character they stand for,
// so the delimiter can be given in environment variables and YAML alike.
func unquoteDelimiter(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidDelimiter)
	}

	if !strings.Contains(raw, `\`) {
		return raw, nil
	}

	value, err := strconv.Unquote(`"` + raw + `"`)
	if err != nil || value == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidDelimiter, raw)
	}

	return value, nil
}
