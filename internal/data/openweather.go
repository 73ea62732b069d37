package data

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"pitwall/internal/model"
)

// trackTempOffsetC: track temp ≈ air temp + 15°C. Real track temps depend
// on surface type, cloud cover and sun angle; this is the rough
// approximation commonly used in strategy work.
const trackTempOffsetC = 15.0

// OpenWeatherClient fetches forecasts from the OpenWeatherMap One Call API.
type OpenWeatherClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	cache   *ResponseCache
}

// NewOpenWeatherClient creates a client. If baseURL is empty, defaults to
// the public API endpoint. cache may be nil to disable caching.
func NewOpenWeatherClient(apiKey string, baseURL string, cache *ResponseCache) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org"
	}
	return &OpenWeatherClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache,
	}
}

// OpenWeatherError represents an error response from the weather API.
type OpenWeatherError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *OpenWeatherError) Error() string {
	return e.Message
}

// HourlyForecast is one forecast hour, with the derived track temperature.
type HourlyForecast struct {
	TimeUTC         time.Time `json:"dt_utc"`
	AirTempC        float64   `json:"air_temp_c"`
	TrackTempC      float64   `json:"track_temp_c"`
	HumidityPct     float64   `json:"humidity_pct"`
	WindSpeedMS     float64   `json:"wind_speed_ms"`
	RainProbability float64   `json:"rain_probability"`
	RainMMPerH      float64   `json:"rain_mm_per_h"`
	Description     string    `json:"weather_desc"`
}

// Forecast is the parsed weather response for one circuit location.
type Forecast struct {
	Lat               float64          `json:"lat"`
	Lon               float64          `json:"lon"`
	CurrentAirTempC   float64          `json:"current_air_temp_c"`
	CurrentTrackTempC float64          `json:"current_track_temp_c"`
	Hourly            []HourlyForecast `json:"hourly"`
}

// oneCallResponse mirrors the subset of the One Call 3.0 payload we read.
type oneCallResponse struct {
	Current struct {
		Temp float64 `json:"temp"`
	} `json:"current"`
	Hourly []struct {
		Dt        int64   `json:"dt"`
		Temp      float64 `json:"temp"`
		Humidity  float64 `json:"humidity"`
		WindSpeed float64 `json:"wind_speed"`
		Pop       float64 `json:"pop"`
		Rain      struct {
			OneH float64 `json:"1h"`
		} `json:"rain"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	} `json:"hourly"`
}

// Fetch retrieves the 48-hour forecast for the given coordinates.
func (c *OpenWeatherClient) Fetch(lat, lon float64) (*Forecast, error) {
	if c.APIKey == "" {
		return nil, &OpenWeatherError{Code: "MISSING_API_KEY", Message: "OpenWeather API key is required"}
	}

	cacheKey := fmt.Sprintf("%.4f:%.4f", lat, lon)
	if cached, ok := c.cache.Get(cacheKey); ok {
		logrus.WithField("key", cacheKey).Debug("weather cache hit")
		return cached, nil
	}

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%v", lat))
	q.Set("lon", fmt.Sprintf("%v", lon))
	q.Set("appid", c.APIKey)
	q.Set("units", "metric")
	q.Set("exclude", "minutely,daily,alerts")

	reqURL := fmt.Sprintf("%s/data/3.0/onecall?%s", c.BaseURL, q.Encode())
	resp, err := c.Client.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		code := "WEATHER_API_ERROR"
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			code = "INVALID_API_KEY"
		case http.StatusTooManyRequests:
			code = "RATE_LIMITED"
		}
		return nil, &OpenWeatherError{
			StatusCode: resp.StatusCode,
			Code:       code,
			Message:    fmt.Sprintf("weather API returned %d: %s", resp.StatusCode, string(body)),
		}
	}

	var raw oneCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	fc := &Forecast{
		Lat:               lat,
		Lon:               lon,
		CurrentAirTempC:   raw.Current.Temp,
		CurrentTrackTempC: raw.Current.Temp + trackTempOffsetC,
	}
	for _, h := range raw.Hourly {
		desc := ""
		if len(h.Weather) > 0 {
			desc = h.Weather[0].Description
		}
		fc.Hourly = append(fc.Hourly, HourlyForecast{
			TimeUTC:         time.Unix(h.Dt, 0).UTC(),
			AirTempC:        h.Temp,
			TrackTempC:      h.Temp + trackTempOffsetC,
			HumidityPct:     h.Humidity,
			WindSpeedMS:     h.WindSpeed,
			RainProbability: h.Pop,
			RainMMPerH:      h.Rain.OneH,
			Description:     desc,
		})
	}

	c.cache.Set(cacheKey, fc)
	return fc, nil
}

// DeriveWeatherState maps a forecast hour's rain signals onto the engine's
// weather input. This is the single place the condition is derived; the
// engine accepts it as given.
//
// Intensity blends rain probability with observed rate (2 mm/h ≈ steady
// rain, 10 mm/h ≈ downpour).
func DeriveWeatherState(h HourlyForecast) model.WeatherState {
	intensity := h.RainProbability
	if h.RainMMPerH > 0 {
		byRate := h.RainMMPerH / 10.0
		if byRate > 1 {
			byRate = 1
		}
		if byRate > intensity {
			intensity = byRate
		}
	}

	cond := model.ConditionDry
	switch {
	case intensity >= 0.8:
		cond = model.ConditionExtreme
	case intensity >= 0.5:
		cond = model.ConditionWet
	case intensity >= 0.2:
		cond = model.ConditionDamp
	}
	return model.WeatherState{Condition: cond, RainIntensity: intensity}
}
