package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pitwall/internal/api/models"
	"pitwall/internal/data"
)

// WeatherHandler serves circuit weather forecasts.
type WeatherHandler struct {
	client *data.OpenWeatherClient
}

func NewWeatherHandler(client *data.OpenWeatherClient) *WeatherHandler {
	return &WeatherHandler{client: client}
}

// GetWeather handles GET /api/v1/weather?circuit=<key>.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	circuit := c.Query("circuit")
	if circuit == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "circuit query parameter is required",
			},
		})
		return
	}

	loc, ok := data.GetCircuitLocation(circuit)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UNKNOWN_CIRCUIT",
				Message: "no coordinates known for circuit " + circuit,
			},
		})
		return
	}

	fc, err := h.client.Fetch(loc.Lat, loc.Lon)
	if err != nil {
		var owErr *data.OpenWeatherError
		if errors.As(err, &owErr) {
			status := http.StatusBadGateway
			switch owErr.Code {
			case "MISSING_API_KEY", "INVALID_API_KEY":
				status = http.StatusUnauthorized
			case "RATE_LIMITED":
				status = http.StatusTooManyRequests
			}
			c.JSON(status, models.ErrorResponse{
				Error: models.ErrorDetail{Code: owErr.Code, Message: owErr.Message},
			})
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "WEATHER_API_ERROR", Message: err.Error()},
		})
		return
	}

	resp := models.WeatherResponse{
		Circuit:  loc.Key,
		Forecast: fc,
		Note:     "track_temp_c is approximated as air temperature + 15°C",
	}
	if len(fc.Hourly) > 0 {
		derived := data.DeriveWeatherState(fc.Hourly[0])
		resp.Derived = &derived
	}
	c.JSON(http.StatusOK, resp)
}
