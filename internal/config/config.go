package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the aquaponics dashboard service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8980"`

	// Dataset sources: http(s) URL, gs://bucket/object, or a local path
	// relative to LocalDataDir
	EnergySourceURL string `env:"ENERGY_SOURCE_URL,default=https://raw.githubusercontent.com/omfeonix/aquaeco-data/main/energy_generation.csv"`
	SensorSourceURL string `env:"SENSOR_SOURCE_URL,default=https://raw.githubusercontent.com/omfeonix/aquaeco-data/main/water_quality.csv"`

	// AI assistant embed (opaque external surface, iframe only)
	AssistantEmbedURL string `env:"ASSISTANT_EMBED_URL,default=https://www.stack-ai.com/embed/aquaeco-assistant"`

	// Optional RSS feed for the community news panel; empty disables it
	NewsFeedURL string `env:"NEWS_FEED_URL"`

	// Local data directory for file-based dataset sources
	LocalDataDir string `env:"LOCAL_DATA_DIR,default=./data"`

	// GCS configuration (only needed for gs:// dataset sources)
	GCSBucket string `env:"GCS_BUCKET"`

	// Fetch behavior: single attempt per render, bounded by this timeout
	FetchTimeoutSeconds int `env:"FETCH_TIMEOUT_SECONDS,default=30"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("FETCH_TIMEOUT_SECONDS must be positive, got %d", cfg.FetchTimeoutSeconds)
	}
	return &cfg, nil
}
