package transport

import (
	"net/http"
	"time"

	"github.com/dskendzo/eventplanner/internal/service"

	"github.com/gin-gonic/gin"
)

type WeatherHandler struct {
	weatherService service.WeatherService
}

func NewWeatherHandler(weatherService service.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

// GetForecast handles GET /weather?location=Skopje&date=2026-09-10. When the
// provider is unreachable the gateway degrades to "no forecast", which this
// standalone endpoint reports as 502.
func (h *WeatherHandler) GetForecast(c *gin.Context) {
	location := c.Query("location")
	dateStr := c.Query("date")

	if location == "" || dateStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "location and date query params are required"})
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, dateStr); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid date format"})
			return
		}
	}

	forecast, err := h.weatherService.GetForecast(c.Request.Context(), location, date)
	if err != nil {
		respondError(c, err)
		return
	}
	if forecast == nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Success: false, Error: "forecast provider unavailable"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: forecast})
}
