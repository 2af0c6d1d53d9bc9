package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/weather-assistant/internal/weather"
	"github.com/sony/gobreaker"
)

// DefaultOpenWeatherURL is the OpenWeatherMap current-weather endpoint.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherConfig carries everything the provider needs; nothing is read
// from the environment at call time.
type OpenWeatherConfig struct {
	APIKey  string
	BaseURL string // defaults to DefaultOpenWeatherURL
	Units   string // defaults to "metric"
	Backoff BackoffConfig
}

// OpenWeatherProvider implements weather.Fetcher for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	units   string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, cfg OpenWeatherConfig) *OpenWeatherProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	units := cfg.Units
	if units == "" {
		units = "metric"
	}
	backoff := cfg.Backoff
	if backoff.InitialInterval <= 0 {
		backoff.InitialInterval = 500 * time.Millisecond
	}
	if backoff.MaxInterval <= 0 {
		backoff.MaxInterval = 5 * time.Second
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		units:   units,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Fetch returns the decoded body of a 200 response. Every other outcome is
// reported as weather.ErrFetchFailed. A missing API key is still sent so the
// provider answers with its own 401.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, loc weather.Location) (weather.RawRecord, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("q", string(loc))
		values.Set("appid", p.apiKey)
		values.Set("units", p.units)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", weather.ErrFetchFailed, resp.StatusCode)
	}

	var payload any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", weather.ErrFetchFailed, err)
	}

	// A body that is not an object carries nothing to normalize.
	obj, ok := payload.(map[string]any)
	if !ok {
		return weather.RawRecord{}, nil
	}
	return weather.RawRecord(obj), nil
}
