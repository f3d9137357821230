package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dskendzo/eventplanner/internal/entity"
	"github.com/dskendzo/eventplanner/pkg/weatherapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForecastCache struct {
	mu      sync.Mutex
	entries map[string]*entity.Forecast
}

func newFakeForecastCache() *fakeForecastCache {
	return &fakeForecastCache{entries: make(map[string]*entity.Forecast)}
}

func cacheKey(location string, date time.Time) string {
	return fmt.Sprintf("%s:%s", strings.ToLower(location), date.Format("2006-01-02"))
}

func (f *fakeForecastCache) Get(ctx context.Context, location string, date time.Time) (*entity.Forecast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[cacheKey(location, date)], nil
}

func (f *fakeForecastCache) Set(ctx context.Context, location string, date time.Time, forecast *entity.Forecast) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[cacheKey(location, date)] = forecast
	return nil
}

// expire simulates the TTL lapsing: the entry just stops existing.
func (f *fakeForecastCache) expire(location string, date time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, cacheKey(location, date))
}

func (f *fakeForecastCache) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

type fakeForecastProvider struct {
	mu       sync.Mutex
	calls    int
	forecast *weatherapi.CityForecast
	err      error
}

func (f *fakeForecastProvider) Forecast(ctx context.Context, location string) (*weatherapi.CityForecast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.forecast, nil
}

func (f *fakeForecastProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func skopjeForecast(points ...weatherapi.ForecastPoint) *weatherapi.CityForecast {
	return &weatherapi.CityForecast{City: "Skopje", Points: points}
}

func TestGetForecastUsesCacheWithinTTL(t *testing.T) {
	target := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)
	cache := newFakeForecastCache()
	provider := &fakeForecastProvider{
		forecast: skopjeForecast(weatherapi.ForecastPoint{Time: target, Temperature: 21.5}),
	}
	svc := NewWeatherService(cache, provider)
	ctx := context.Background()

	first, err := svc.GetForecast(ctx, "Skopje", target)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.GetForecast(ctx, "Skopje", target)
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, 1, provider.callCount())
	assert.Equal(t, first.Temperature, second.Temperature)
}

func TestGetForecastCaseFoldsLocation(t *testing.T) {
	target := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)
	cache := newFakeForecastCache()
	provider := &fakeForecastProvider{
		forecast: skopjeForecast(weatherapi.ForecastPoint{Time: target, Temperature: 21.5}),
	}
	svc := NewWeatherService(cache, provider)
	ctx := context.Background()

	_, err := svc.GetForecast(ctx, "Skopje", target)
	require.NoError(t, err)

	// Different casing, same cache entry.
	forecast, err := svc.GetForecast(ctx, "SKOPJE", target)
	require.NoError(t, err)
	require.NotNil(t, forecast)

	assert.Equal(t, 1, provider.callCount())
	// The payload carries the provider's spelling, not the requested one.
	assert.Equal(t, "Skopje", forecast.Location)
}

func TestGetForecastRefetchesAfterExpiry(t *testing.T) {
	target := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)
	cache := newFakeForecastCache()
	provider := &fakeForecastProvider{
		forecast: skopjeForecast(weatherapi.ForecastPoint{Time: target, Temperature: 21.5}),
	}
	svc := NewWeatherService(cache, provider)
	ctx := context.Background()

	_, err := svc.GetForecast(ctx, "Skopje", target)
	require.NoError(t, err)

	cache.expire("Skopje", target)

	_, err = svc.GetForecast(ctx, "Skopje", target)
	require.NoError(t, err)

	assert.Equal(t, 2, provider.callCount())
}

func TestGetForecastPicksNearestPoint(t *testing.T) {
	target := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		points   []weatherapi.ForecastPoint
		wantTemp float64
	}{
		{
			name: "closest point wins",
			points: []weatherapi.ForecastPoint{
				{Time: target.Add(-3 * time.Hour), Temperature: 10},
				{Time: target.Add(1 * time.Hour), Temperature: 20},
				{Time: target.Add(5 * time.Hour), Temperature: 30},
			},
			wantTemp: 20,
		},
		{
			name: "equidistant points keep provider order",
			points: []weatherapi.ForecastPoint{
				{Time: target.Add(-2 * time.Hour), Temperature: 10},
				{Time: target.Add(2 * time.Hour), Temperature: 20},
			},
			wantTemp: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := newFakeForecastCache()
			provider := &fakeForecastProvider{forecast: skopjeForecast(tt.points...)}
			svc := NewWeatherService(cache, provider)

			forecast, err := svc.GetForecast(context.Background(), "Skopje", target)
			require.NoError(t, err)
			require.NotNil(t, forecast)

			assert.Equal(t, tt.wantTemp, forecast.Temperature)
		})
	}
}

func TestGetForecastProviderFailureDegrades(t *testing.T) {
	target := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)
	cache := newFakeForecastCache()
	provider := &fakeForecastProvider{err: errors.New("connection refused")}
	svc := NewWeatherService(cache, provider)

	forecast, err := svc.GetForecast(context.Background(), "Skopje", target)

	// No error and no forecast: weather is supplementary.
	require.NoError(t, err)
	assert.Nil(t, forecast)

	// A failed fetch must not leave a corrupt cache entry behind.
	assert.Equal(t, 0, cache.size())
}

func TestGetForecastEmptyProviderResponse(t *testing.T) {
	target := time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)
	cache := newFakeForecastCache()
	provider := &fakeForecastProvider{forecast: skopjeForecast()}
	svc := NewWeatherService(cache, provider)

	forecast, err := svc.GetForecast(context.Background(), "Skopje", target)
	require.NoError(t, err)
	assert.Nil(t, forecast)
	assert.Equal(t, 0, cache.size())
}
