package models

import (
	"pitwall/internal/data"
	"pitwall/internal/model"
)

// ErrorDetail follows the {error:{code,message}} envelope used by every
// endpoint.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SimulateResponse echoes the request context alongside the ranked result
// so the response is self-describing.
type SimulateResponse struct {
	TotalLaps        int               `json:"total_laps"`
	PitLossSeconds   float64           `json:"pit_loss_seconds"`
	BaseLapTimeS     float64           `json:"base_lap_time_s"`
	TrackTempC       *float64          `json:"track_temp_c,omitempty"`
	WeatherCondition string            `json:"weather_condition"`
	RainIntensity    float64           `json:"rain_intensity"`
	Strategies       []model.Strategy  `json:"strategies"`
	Recommended      string            `json:"recommended"`
	DeltaS           float64           `json:"delta_s"`
	RuleHits         [][]model.RuleHit `json:"rule_hits,omitempty"`
	Notes            []string          `json:"notes,omitempty"`
	Model            string            `json:"model"`
}

// ModelName identifies the simulation model version in responses.
const ModelName = "piecewise_linear_cliff + wet_crossover"

// CompoundsResponse is the catalogue served by GET /api/v1/compounds.
type CompoundsResponse struct {
	CircuitKey string                          `json:"circuit_key,omitempty"`
	TrackTempC *float64                        `json:"track_temp_c,omitempty"`
	DataSource string                          `json:"data_source"`
	Compounds  map[string]model.CompoundParams `json:"compounds"`
	Notes      []string                        `json:"notes,omitempty"`
}

// TyreNominationResponse is the per-race nomination served by
// GET /api/v1/tyres/:circuit.
type TyreNominationResponse struct {
	CircuitKey string   `json:"circuit_key"`
	Year       int      `json:"year"`
	Slicks     []string `json:"slicks"`
	Wet        []string `json:"wet"`
}

// WeatherResponse is the forecast served by GET /api/v1/weather, including
// the engine-ready weather state derived from the current hour.
type WeatherResponse struct {
	Circuit  string              `json:"circuit"`
	Forecast *data.Forecast      `json:"forecast"`
	Derived  *model.WeatherState `json:"derived,omitempty"`
	Note     string              `json:"note"`
}
