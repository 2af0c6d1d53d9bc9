package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-assistant/internal/weather"
)

const clearSkyBody = `{"coord":{"lon":-0.13,"lat":51.51},"weather":[{"id":800,"main":"Clear","description":"clear sky","icon":"01d"}],"main":{"temp":21.5,"feels_like":21.1,"humidity":50},"name":"London","cod":200}`

func newTestProvider(t *testing.T, serverURL string, retries int) *OpenWeatherProvider {
	t.Helper()
	return NewOpenWeatherProvider(&http.Client{Timeout: 5 * time.Second}, OpenWeatherConfig{
		APIKey:  "test-key",
		BaseURL: serverURL,
		Backoff: BackoffConfig{
			MaxRetries:      retries,
			InitialInterval: time.Millisecond,
			MaxInterval:     5 * time.Millisecond,
		},
	})
}

func respondWith(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestFetch_SendsQueryParameters(t *testing.T) {
	var query map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		query = map[string]string{"q": q.Get("q"), "appid": q.Get("appid"), "units": q.Get("units")}
		respondWith(http.StatusOK, clearSkyBody)(w, r)
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, 0)
	_, err := p.Fetch(context.Background(), "São Paulo,BR")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"q": "São Paulo,BR", "appid": "test-key", "units": "metric"}, query)
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(respondWith(http.StatusOK, clearSkyBody))
	defer server.Close()

	rec, err := newTestProvider(t, server.URL, 0).Fetch(context.Background(), "London")
	require.NoError(t, err)
	assert.Equal(t, "London", rec["name"])
	assert.Contains(t, rec, "main")
}

func TestFetch_NonOKIsFailure(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusAccepted, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := httptest.NewServer(respondWith(status, `{"cod":"404","message":"city not found"}`))
			defer server.Close()

			rec, err := newTestProvider(t, server.URL, 0).Fetch(context.Background(), "Atlantis")
			require.Error(t, err)
			assert.True(t, errors.Is(err, weather.ErrFetchFailed))
			assert.Nil(t, rec)
		})
	}
}

func TestFetch_TransportErrorIsFailure(t *testing.T) {
	server := httptest.NewServer(respondWith(http.StatusOK, clearSkyBody))
	url := server.URL
	server.Close()

	_, err := newTestProvider(t, url, 0).Fetch(context.Background(), "London")
	assert.ErrorIs(t, err, weather.ErrFetchFailed)
}

func TestFetch_MalformedBodyIsFailure(t *testing.T) {
	server := httptest.NewServer(respondWith(http.StatusOK, `{"main":`))
	defer server.Close()

	_, err := newTestProvider(t, server.URL, 0).Fetch(context.Background(), "London")
	assert.ErrorIs(t, err, weather.ErrFetchFailed)
}

func TestFetch_NonObjectBodyIsEmptyRecord(t *testing.T) {
	server := httptest.NewServer(respondWith(http.StatusOK, `null`))
	defer server.Close()

	rec, err := newTestProvider(t, server.URL, 0).Fetch(context.Background(), "London")
	require.NoError(t, err)
	assert.Empty(t, rec)
}

func TestFetch_NoRetryByDefault(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestProvider(t, server.URL, 0).Fetch(context.Background(), "London")
	assert.ErrorIs(t, err, weather.ErrFetchFailed)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetch_RetriesServerErrorsWhenConfigured(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		respondWith(http.StatusOK, clearSkyBody)(w, r)
	}))
	defer server.Close()

	rec, err := newTestProvider(t, server.URL, 2).Fetch(context.Background(), "London")
	require.NoError(t, err)
	assert.NotEmpty(t, rec)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetch_ClientErrorsDoNotRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, 3)
	for i := 0; i < 10; i++ {
		_, err := p.Fetch(context.Background(), "Atlantis")
		require.ErrorIs(t, err, weather.ErrFetchFailed)
	}
	// Unknown locations neither retry nor open the breaker.
	assert.Equal(t, int32(10), atomic.LoadInt32(&calls))
}

func TestFetch_CancelledContext(t *testing.T) {
	server := httptest.NewServer(respondWith(http.StatusOK, clearSkyBody))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestProvider(t, server.URL, 0).Fetch(ctx, "London")
	assert.ErrorIs(t, err, weather.ErrFetchFailed)
}
