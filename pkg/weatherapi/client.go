// Package weatherapi is a thin client for the OpenWeatherMap 5-day forecast
// endpoint. It returns the raw forecast time series; picking the point that
// matches an event date is the caller's concern.
package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dskendzo/eventplanner/config"
)

type ForecastPoint struct {
	Time            time.Time
	Temperature     float64
	FeelsLike       float64
	Humidity        int
	Description     string
	Icon            string
	WindSpeed       float64
	RainProbability float64
}

// CityForecast carries the provider's own spelling of the city name together
// with the forecast time series.
type CityForecast struct {
	City   string
	Points []ForecastPoint
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(cfg *config.WeatherConfig) *Client {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type forecastResponse struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Pop float64 `json:"pop"`
	} `json:"list"`
}

func (c *Client) Forecast(ctx context.Context, location string) (*CityForecast, error) {
	reqURL := fmt.Sprintf("%s/forecast?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(location), c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast provider returned status %d", resp.StatusCode)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}

	forecast := &CityForecast{City: payload.City.Name}
	for _, item := range payload.List {
		point := ForecastPoint{
			Time:            time.Unix(item.Dt, 0).UTC(),
			Temperature:     item.Main.Temp,
			FeelsLike:       item.Main.FeelsLike,
			Humidity:        item.Main.Humidity,
			WindSpeed:       item.Wind.Speed,
			RainProbability: item.Pop,
		}
		if len(item.Weather) > 0 {
			point.Description = item.Weather[0].Description
			point.Icon = item.Weather[0].Icon
		}
		forecast.Points = append(forecast.Points, point)
	}

	return forecast, nil
}
