package service

import (
	"context"
	"time"

	"github.com/dskendzo/eventplanner/internal/entity"
	"github.com/dskendzo/eventplanner/pkg/weatherapi"

	"github.com/sirupsen/logrus"
)

// weatherService is a read-through cache over the forecast provider. Two
// concurrent misses for the same key may both hit the provider and both
// write the cache; the payload for a given (location, date) is idempotent,
// so last-writer-wins needs no locking.
type weatherService struct {
	cache    ForecastCache
	provider ForecastProvider
}

func NewWeatherService(cache ForecastCache, provider ForecastProvider) WeatherService {
	return &weatherService{
		cache:    cache,
		provider: provider,
	}
}

func (s *weatherService) GetForecast(ctx context.Context, location string, date time.Time) (*entity.Forecast, error) {
	cached, err := s.cache.Get(ctx, location, date)
	if err != nil {
		logrus.Warnf("Forecast cache read failed for %q: %v", location, err)
	}
	if cached != nil {
		return cached, nil
	}

	cityForecast, err := s.provider.Forecast(ctx, location)
	if err != nil {
		logrus.Warnf("Forecast provider call failed for %q: %v", location, err)
		return nil, nil
	}
	if cityForecast == nil || len(cityForecast.Points) == 0 {
		return nil, nil
	}

	point := nearestPoint(cityForecast.Points, date)

	forecast := &entity.Forecast{
		Location:        cityForecast.City,
		Date:            date,
		Temperature:     point.Temperature,
		FeelsLike:       point.FeelsLike,
		Humidity:        point.Humidity,
		Description:     point.Description,
		Icon:            point.Icon,
		WindSpeed:       point.WindSpeed,
		RainProbability: point.RainProbability,
	}

	if err := s.cache.Set(ctx, location, date, forecast); err != nil {
		logrus.Warnf("Forecast cache write failed for %q: %v", location, err)
	}

	return forecast, nil
}

// nearestPoint picks the forecast point with the smallest absolute distance
// to the target time. Ties keep the first point in provider order.
func nearestPoint(points []weatherapi.ForecastPoint, target time.Time) weatherapi.ForecastPoint {
	best := points[0]
	bestDiff := absDuration(points[0].Time.Sub(target))

	for _, p := range points[1:] {
		diff := absDuration(p.Time.Sub(target))
		if diff < bestDiff {
			best = p
			bestDiff = diff
		}
	}

	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
