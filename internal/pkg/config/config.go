package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type PlacesConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
}

type DiscoveryConfig struct {
	PoolTargetSize int
	AnchorCacheTTL time.Duration
	ResultCacheTTL time.Duration
	SessionTTL     time.Duration
}

type Config struct {
	Places     PlacesConfig
	Discovery  DiscoveryConfig
	ServerPort string
}

func Load() (*Config, error) {
	cfg := &Config{
		Places: PlacesConfig{
			APIKey:         os.Getenv("GOOGLE_PLACES_API_KEY"),
			BaseURL:        getEnvOrDefault("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
			RequestTimeout: getDurationOrDefault("PLACES_REQUEST_TIMEOUT", 10*time.Second),
		},
		Discovery: DiscoveryConfig{
			PoolTargetSize: getIntOrDefault("POOL_TARGET_SIZE", 10),
			AnchorCacheTTL: getDurationOrDefault("ANCHOR_CACHE_TTL", 15*time.Minute),
			ResultCacheTTL: getDurationOrDefault("RESULT_CACHE_TTL", 5*time.Minute),
			SessionTTL:     getDurationOrDefault("SESSION_TTL", 72*time.Hour),
		},
		ServerPort: getEnvOrDefault("SERVER_PORT", "8091"),
	}

	if cfg.Places.APIKey == "" {
		return nil, fmt.Errorf("GOOGLE_PLACES_API_KEY environment variable is required")
	}
	if cfg.Discovery.PoolTargetSize <= 0 {
		return nil, fmt.Errorf("POOL_TARGET_SIZE must be positive")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
