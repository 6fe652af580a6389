package main

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/airlinerank/aviation"
	"github.com/kbukum/airlinerank/catalog"
	"github.com/kbukum/airlinerank/component"
	"github.com/kbukum/airlinerank/datasource"
	"github.com/kbukum/airlinerank/errors"
	"github.com/kbukum/airlinerank/logger"
)

func TestLoadConfig_Sample(t *testing.T) {
	cfg, err := loadConfig("config.yml")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Name != "airlinerank" || cfg.Environment != "production" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.Ranking.Origin != "AMS" || cfg.Ranking.FetchTimeout != 10*time.Second || cfg.Ranking.RetryAttempts != 3 {
		t.Errorf("unexpected ranking config %+v", cfg.Ranking)
	}
	if cfg.Data.Airports != filepath.Join("data", "airports.json") {
		t.Errorf("expected path relative to the config file, got %q", cfg.Data.Airports)
	}
	if cfg.Telemetry.Enabled {
		t.Error("telemetry should be off in the sample config")
	}
}

func TestLoadConfig_ResolvesPathsAgainstConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := "name: airlinerank\ndata:\n  airlines: a.json\n  airports: /abs/b.json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Data.Airlines != filepath.Join(dir, "a.json") {
		t.Errorf("expected %s, got %s", filepath.Join(dir, "a.json"), cfg.Data.Airlines)
	}
	if cfg.Data.Airports != "/abs/b.json" {
		t.Errorf("absolute paths must be kept, got %s", cfg.Data.Airports)
	}
	if cfg.Data.Flights != filepath.Join(dir, "data", "flights.json") {
		t.Errorf("expected default flights path, got %s", cfg.Data.Flights)
	}
	if cfg.Ranking.RetryAttempts != 3 || cfg.Telemetry.SampleRate != 1.0 {
		t.Errorf("expected defaults, got %+v %+v", cfg.Ranking, cfg.Telemetry)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.ApplyDefaults()
		return c
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"negative timeout", func(c *Config) { c.Ranking.FetchTimeout = -time.Second }, false},
		{"too many retries", func(c *Config) { c.Ranking.RetryAttempts = 50 }, false},
		{"bad endpoint", func(c *Config) { c.Telemetry.Endpoint = "not an endpoint" }, false},
		{"sample rate above one", func(c *Config) { c.Telemetry.SampleRate = 1.5 }, false},
		{"missing data path", func(c *Config) { c.Data.Flights = "" }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			err := c.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestNewOriginSelector(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name     string
		id       string
		lat, lon float64
		fallback string
		want     string
		wantErr  bool
	}{
		{"explicit id wins", "LHR", 1, 2, "AMS", "LHR", false},
		{"position", "", 52.37, 4.89, "AMS", "nearest to (52.3700, 4.8900)", false},
		{"fallback", "", nan, nan, "AMS", "AMS", false},
		{"lat without lon", "", 52, nan, "AMS", "", true},
		{"out of range", "", 95, 0, "", "", true},
		{"nothing", "", nan, nan, "", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel, err := newOriginSelector(tc.id, tc.lat, tc.lon, tc.fallback)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if sel.String() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, sel.String())
			}
		})
	}
}

func TestFormatKm(t *testing.T) {
	tests := map[float64]string{
		0:         "0.0",
		365.79:    "365.8",
		6616.4567: "6,616.5",
		1234567.8: "1,234,567.8",
	}
	for in, want := range tests {
		if got := formatKm(in); got != want {
			t.Errorf("formatKm(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderRanking(t *testing.T) {
	origin := aviation.Airport{ID: "AMS", Name: "Schiphol"}
	airlines := []aviation.Airline{
		aviation.Airline{ID: "LH", Name: "Lufthansa"}.WithDistance(365.8),
		aviation.Airline{ID: "KL", Name: "KLM"}.WithDistance(6616.4),
	}
	warning := "Loading flights took too long. Please try again."
	out := renderRanking(origin, airlines, &warning)

	for _, want := range []string{"AMS (Schiphol)", "warning: " + warning, "AIRLINE", "Lufthansa", "6,616.4"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Lufthansa") > strings.Index(out, "KLM") {
		t.Error("expected ranking order to be preserved")
	}
}

func TestRenderRanking_Empty(t *testing.T) {
	out := renderRanking(aviation.Airport{ID: "MAD"}, nil, nil)
	if !strings.Contains(out, "No airlines depart") {
		t.Errorf("expected empty message, got:\n%s", out)
	}
	if strings.Contains(out, "warning") {
		t.Error("no warning expected")
	}
}

func sampleConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := loadConfig("config.yml")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Logging.Level = "disabled"
	return cfg
}

func TestRun_SampleData(t *testing.T) {
	cfg := sampleConfig(t)
	var out bytes.Buffer
	if err := run(context.Background(), cfg, originSelector{id: "AMS"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := out.String()
	order := []string{"Lufthansa", "British Airways", "Air France", "Emirates", "KLM Royal Dutch Airlines"}
	last := -1
	for _, name := range order {
		idx := strings.Index(got, name)
		if idx < 0 {
			t.Fatalf("expected %q in output:\n%s", name, got)
		}
		if idx < last {
			t.Errorf("%q out of order:\n%s", name, got)
		}
		last = idx
	}
	for _, absent := range []string{"Turkish Airlines", "Iberia", "warning"} {
		if strings.Contains(got, absent) {
			t.Errorf("did not expect %q in output:\n%s", absent, got)
		}
	}
}

func TestRun_NearestOrigin(t *testing.T) {
	cfg := sampleConfig(t)
	pos := aviation.Coordinate{Latitude: 51.5072, Longitude: -0.1276}
	var out bytes.Buffer
	if err := run(context.Background(), cfg, originSelector{pos: &pos}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Airlines from LHR") {
		t.Errorf("expected London Heathrow as origin:\n%s", got)
	}
	if strings.Index(got, "Iberia") > strings.Index(got, "British Airways") {
		t.Errorf("expected Iberia (MAD) before British Airways (JFK):\n%s", got)
	}
}

func TestRun_UnknownOrigin(t *testing.T) {
	cfg := sampleConfig(t)
	err := run(context.Background(), cfg, originSelector{id: "XXX"}, &bytes.Buffer{})
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestRun_MissingFlightsFile(t *testing.T) {
	cfg := sampleConfig(t)
	cfg.Data.Flights = filepath.Join(t.TempDir(), "missing.json")
	var out bytes.Buffer
	if err := run(context.Background(), cfg, originSelector{id: "AMS"}, &out); err != nil {
		t.Fatalf("a failed source must not fail the run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "warning: The requested flights data was not found.") {
		t.Errorf("expected a warning for the missing file:\n%s", got)
	}
	if !strings.Contains(got, "No airlines depart") {
		t.Errorf("expected an empty ranking:\n%s", got)
	}
}

func TestCatalogComponentHealth(t *testing.T) {
	airports := []aviation.Airport{
		{ID: "AMS", Name: "Schiphol", Coordinate: aviation.Coordinate{Latitude: 52.31, Longitude: 4.76}},
		{ID: "LHR", Name: "Heathrow", Coordinate: aviation.Coordinate{Latitude: 51.47, Longitude: -0.45}},
	}
	tests := []struct {
		name    string
		fetcher datasource.Fetcher[aviation.Airport]
		wantErr bool
		want    component.HealthStatus
	}{
		{"loaded", datasource.Static("airports", airports), false, component.StatusHealthy},
		{"failed", datasource.NewFetcher[aviation.Airport]("airports", func(context.Context) ([]aviation.Airport, error) {
			return nil, errors.NotFound("file", "airports.json")
		}), true, component.StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &catalogComponent{cat: catalog.New(datasource.Airports(tt.fetcher), catalog.WithLogger(logger.NewNop()))}
			err := c.Start(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Start error = %v, wantErr %v", err, tt.wantErr)
			}
			h := c.Health(context.Background())
			if h.Status != tt.want {
				t.Errorf("Health = %+v, want status %s", h, tt.want)
			}
		})
	}
}

func TestTelemetryComponentHealth_NotStarted(t *testing.T) {
	c := &telemetryComponent{}
	if h := c.Health(context.Background()); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %+v", h)
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Errorf("Stop before Start: %v", err)
	}
}
