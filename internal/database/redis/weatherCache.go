package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dskendzo/eventplanner/internal/entity"

	"github.com/redis/go-redis/v9"
)

// ForecastCache stores normalized forecasts keyed by (location, date).
// Expiry is owned by Redis: entries are written with the configured TTL and
// simply stop existing once it lapses, so there is no application-side
// expiresAt bookkeeping.
type ForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewForecastCache(client *redis.Client, ttl time.Duration) *ForecastCache {
	return &ForecastCache{
		client: client,
		ttl:    ttl,
	}
}

// forecastKey case-folds the location so "Skopje" and "skopje" share an
// entry. The date component is day-granular: a forecast is per calendar day.
func forecastKey(location string, date time.Time) string {
	return fmt.Sprintf("weather:%s:%s", strings.ToLower(strings.TrimSpace(location)), date.Format("2006-01-02"))
}

func (c *ForecastCache) Get(ctx context.Context, location string, date time.Time) (*entity.Forecast, error) {
	data, err := c.client.Get(ctx, forecastKey(location, date)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var forecast entity.Forecast
	if err := json.Unmarshal([]byte(data), &forecast); err != nil {
		return nil, err
	}

	return &forecast, nil
}

func (c *ForecastCache) Set(ctx context.Context, location string, date time.Time, forecast *entity.Forecast) error {
	data, err := json.Marshal(forecast)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, forecastKey(location, date), data, c.ttl).Err()
}
