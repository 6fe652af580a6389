package main

import (
	"path/filepath"
	"time"

	"github.com/kbukum/airlinerank/config"
	"github.com/kbukum/airlinerank/observability"
	"github.com/kbukum/airlinerank/resilience"
	"github.com/kbukum/airlinerank/validation"
)

const serviceName = "airlinerank"

// Config is the airlinerank CLI configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Data                 DataConfig      `yaml:"data" mapstructure:"data"`
	Ranking              RankingConfig   `yaml:"ranking" mapstructure:"ranking"`
	Telemetry            TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// DataConfig points at the JSON files backing the data sources.
type DataConfig struct {
	Airlines string `yaml:"airlines" mapstructure:"airlines" validate:"required"`
	Airports string `yaml:"airports" mapstructure:"airports" validate:"required"`
	Flights  string `yaml:"flights" mapstructure:"flights" validate:"required"`
}

// RankingConfig tunes the ranking pipeline.
type RankingConfig struct {
	Origin        string        `yaml:"origin" mapstructure:"origin"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout" validate:"gte=0"`
	RetryAttempts int           `yaml:"retry_attempts" mapstructure:"retry_attempts" validate:"min=1,max=10"`
}

// TelemetryConfig enables OTLP export of traces and metrics.
type TelemetryConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Data.Airlines == "" {
		c.Data.Airlines = filepath.Join("data", "airlines.json")
	}
	if c.Data.Airports == "" {
		c.Data.Airports = filepath.Join("data", "airports.json")
	}
	if c.Data.Flights == "" {
		c.Data.Flights = filepath.Join("data", "flights.json")
	}
	if c.Ranking.RetryAttempts == 0 {
		c.Ranking.RetryAttempts = 3
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = "localhost:4318"
	}
	if c.Telemetry.SampleRate == 0 {
		c.Telemetry.SampleRate = 1.0
	}
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return validation.Validate(c)
}

// resolvePaths makes relative data paths relative to dir.
func (c *Config) resolvePaths(dir string) {
	for _, p := range []*string{&c.Data.Airlines, &c.Data.Airports, &c.Data.Flights} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

func (c *Config) retry() resilience.RetryConfig {
	rc := resilience.DefaultRetryConfig()
	rc.MaxAttempts = c.Ranking.RetryAttempts
	return rc
}

func (c *Config) telemetry() observability.Config {
	oc := observability.DefaultConfig(c.Name)
	oc.ServiceVersion = c.Version
	oc.Environment = c.Environment
	oc.Endpoint = c.Telemetry.Endpoint
	oc.Insecure = c.Telemetry.Insecure
	oc.SampleRate = c.Telemetry.SampleRate
	return oc
}
