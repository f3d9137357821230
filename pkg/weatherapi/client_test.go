package weatherapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dskendzo/eventplanner/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"city": {"name": "Skopje"},
	"list": [
		{
			"dt": 1757523600,
			"main": {"temp": 24.3, "feels_like": 23.8, "humidity": 41},
			"weather": [{"description": "clear sky", "icon": "01d"}],
			"wind": {"speed": 3.2},
			"pop": 0.15
		},
		{
			"dt": 1757534400,
			"main": {"temp": 19.1, "feels_like": 18.5, "humidity": 60},
			"weather": [{"description": "few clouds", "icon": "02n"}],
			"wind": {"speed": 2.1}
		}
	]
}`

func newTestClient(baseURL string) *Client {
	return NewClient(&config.WeatherConfig{
		BaseURL:        baseURL,
		APIKey:         "test-key",
		RequestTimeout: time.Second,
	})
}

func TestForecastParsesProviderResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "Skopje", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	forecast, err := newTestClient(server.URL).Forecast(context.Background(), "Skopje")
	require.NoError(t, err)

	assert.Equal(t, "Skopje", forecast.City)
	require.Len(t, forecast.Points, 2)

	first := forecast.Points[0]
	assert.Equal(t, time.Unix(1757523600, 0).UTC(), first.Time)
	assert.Equal(t, 24.3, first.Temperature)
	assert.Equal(t, 23.8, first.FeelsLike)
	assert.Equal(t, 41, first.Humidity)
	assert.Equal(t, "clear sky", first.Description)
	assert.Equal(t, "01d", first.Icon)
	assert.Equal(t, 3.2, first.WindSpeed)
	assert.Equal(t, 0.15, first.RainProbability)

	// Missing pop defaults to zero.
	assert.Equal(t, 0.0, forecast.Points[1].RainProbability)
}

func TestForecastNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Forecast(context.Background(), "Skopje")
	assert.Error(t, err)
}

func TestForecastMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Forecast(context.Background(), "Skopje")
	assert.Error(t, err)
}
