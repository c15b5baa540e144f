// In file: cmd/toolserver/config.go
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/dileep-u-k/device-tools/internal/llm"
	"github.com/dileep-u-k/device-tools/internal/metadata"
	"github.com/dileep-u-k/device-tools/internal/search"
	"github.com/dileep-u-k/device-tools/internal/weather"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config.yaml"

// FileConfig is the structured part of the configuration, read from config.yaml.
type FileConfig struct {
	Weather  weather.Config  `yaml:"weather"`
	Search   search.Config   `yaml:"search"`
	Metadata metadata.Config `yaml:"metadata"`
	Summary  SummaryConfig   `yaml:"summary"`
	Health   HealthConfig    `yaml:"health"`
}

// SummaryConfig selects the text generator behind web metadata summaries.
type SummaryConfig struct {
	// Provider is gemini, openai or none.
	Provider   string               `yaml:"provider"`
	Generation llm.GenerationConfig `yaml:"generation"`
}

// HealthConfig sets the calendar used for date math by the health, calendar
// and reminder tools.
type HealthConfig struct {
	// TimeZone is an IANA name; empty means the host's local zone.
	TimeZone string `yaml:"time_zone"`
}

// AppConfig holds all configuration for the tool server, loaded from the
// environment and config.yaml.
type AppConfig struct {
	Port         string
	RedisAddr    string
	ExaAPIKey    string
	GeminiAPIKey string
	OpenAIAPIKey string
	File         FileConfig
	Location     *time.Location
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Weather: weather.Config{
			GeocodingURL: weather.DefaultGeocodingURL,
			ForecastURL:  weather.DefaultForecastURL,
			Timeout:      15 * time.Second,
		},
		Search: search.Config{
			BaseURL: search.DefaultBaseURL,
			Timeout: 20 * time.Second,
		},
		Metadata: metadata.Config{Timeout: 15 * time.Second},
		Summary:  SummaryConfig{Provider: llm.ProviderNone},
	}
}

// LoadConfig loads configuration from a .env file, environment variables and
// config.yaml. A missing config.yaml leaves the defaults in place.
func LoadConfig(configPath string) (*AppConfig, error) {
	// In release mode (Docker) the environment is provided directly.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		Port:         getEnv("PORT", "8080"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		ExaAPIKey:    os.Getenv("EXA_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		File:         defaultFileConfig(),
	}

	raw, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("WARNING: %s not found, using built-in defaults.", configPath)
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	default:
		if err := yaml.Unmarshal(raw, &cfg.File); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	}

	cfg.Location = time.Local
	if tz := cfg.File.Health.TimeZone; tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid health time_zone %q: %w", tz, err)
		}
		cfg.Location = loc
	}
	return cfg, nil
}

// SummaryAPIKey returns the key for the configured summary provider.
func (c *AppConfig) SummaryAPIKey() string {
	switch c.File.Summary.Provider {
	case llm.ProviderGemini:
		return c.GeminiAPIKey
	case llm.ProviderOpenAI:
		return c.OpenAIAPIKey
	}
	return ""
}

// getEnv reads an env var or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
