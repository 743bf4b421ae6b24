package config

import (
	"os"
	"strconv"

	"github.com/avforge/configurator/pkg/models"
)

// Config holds all configuration for the AVForge configurator server.
type Config struct {
	Port      int
	Version   string
	Catalog   CatalogConfig
	Store     StoreConfig
	Pricing   models.PricingProfile
	Telemetry TelemetryConfig
}

type CatalogConfig struct {
	// Path to a YAML component list; empty uses the built-in catalog.
	Path string
	// Path to a YAML features/constraints file; empty uses the built-in tables.
	TablesPath string
}

type StoreConfig struct {
	// DataDir holds the JSON snapshot of projects and rooms. Empty disables persistence.
	DataDir string
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
	Version      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	version := envStr("AVFORGE_VERSION", "0.1.0")
	return &Config{
		Port:    envInt("AVFORGE_PORT", 8080),
		Version: version,
		Catalog: CatalogConfig{
			Path:       envStr("AVFORGE_CATALOG_PATH", ""),
			TablesPath: envStr("AVFORGE_FEATURES_PATH", ""),
		},
		Store: StoreConfig{
			DataDir: envStr("AVFORGE_DATA_DIR", ""),
		},
		Pricing: models.PricingProfile{
			LaborRate:      envFloat("AVFORGE_LABOR_RATE", models.DefaultLaborRate),
			MinimumDayRate: envFloat("AVFORGE_MIN_DAY_RATE", 650),
		},
		Telemetry: TelemetryConfig{
			Enabled:      envBool("OTEL_ENABLED", false),
			OTLPEndpoint: envStr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  envStr("OTEL_SERVICE_NAME", "avforge-configurator"),
			Version:      version,
		},
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
