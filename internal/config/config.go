package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/i474232898/weather-assistant/internal/weather"
)

type AppConfig struct {
	OpenWeather OpenWeatherConfig
	OpenAI      OpenAIConfig

	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`
	FetchMaxRetries int           `envconfig:"FETCH_MAX_RETRIES" default:"0" validate:"gte=0,lte=5"`

	// Locations reported on a schedule, separated by ";" so that
	// "Paris,FR" stays a single location.
	WatchLocations LocationList  `envconfig:"WATCH_LOCATIONS"`
	WatchInterval  time.Duration `envconfig:"WATCH_INTERVAL" default:"15m" validate:"gte=1m"`

	// In-memory report log retention.
	StoreMaxHistory int           `envconfig:"STORE_MAX_HISTORY" default:"50" validate:"gte=0"` // 0 = unlimited
	StoreMaxAge     time.Duration `envconfig:"STORE_MAX_AGE" default:"24h" validate:"gte=0"`    // 0 = unlimited

	Port string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
}

// OpenWeatherConfig holds the weather provider settings. A missing key is not
// an error: requests are still sent and fail upstream.
type OpenWeatherConfig struct {
	APIKey  string `envconfig:"OPENWEATHERMAP_API_KEY"`
	BaseURL string `envconfig:"OPENWEATHERMAP_BASE_URL" default:"https://api.openweathermap.org/data/2.5/weather" validate:"required,url"`
	Units   string `envconfig:"OPENWEATHERMAP_UNITS" default:"metric" validate:"oneof=metric imperial standard"`
}

// OpenAIConfig holds the LLM settings. An empty APIKey disables the features
// that need it.
type OpenAIConfig struct {
	APIKey  string `envconfig:"OPENAI_API_KEY"`
	BaseURL string `envconfig:"OPENAI_BASE_URL" validate:"omitempty,url"`
	Model   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini" validate:"required"`
}

// LocationList decodes a ";"-separated list of locations.
type LocationList []weather.Location

// Decode implements envconfig.Decoder.
func (l *LocationList) Decode(value string) error {
	var locs LocationList
	for _, part := range strings.Split(value, ";") {
		loc := weather.Location(strings.TrimSpace(part))
		if loc.IsEmpty() {
			continue
		}
		locs = append(locs, loc)
	}
	*l = locs
	return nil
}

// Load reads configuration from .env and the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.OpenWeather.APIKey == "" {
		log.Println("WARN: OPENWEATHERMAP_API_KEY is not set, weather requests will fail")
	}
	if cfg.OpenAI.APIKey == "" {
		log.Println("WARN: OPENAI_API_KEY is not set, recommendations are disabled")
	}

	return cfg, nil
}
