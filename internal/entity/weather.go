package entity

import "time"

// Forecast is the normalized weather payload cached per (location, date).
// Location carries the name as the provider returned it, which may differ
// from the requested spelling.
type Forecast struct {
	Location        string    `json:"location"`
	Date            time.Time `json:"date"`
	Temperature     float64   `json:"temperature"`
	FeelsLike       float64   `json:"feels_like"`
	Humidity        int       `json:"humidity"`
	Description     string    `json:"description"`
	Icon            string    `json:"icon"`
	WindSpeed       float64   `json:"wind_speed"`
	RainProbability float64   `json:"rain_probability"`
}
