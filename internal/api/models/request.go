package models

import "pitwall/internal/model"

// SimulateRequest is the POST /api/v1/simulate body. Compound parameters
// arrive already resolved (either from a cached catalogue or the caller's
// own numbers); the API layer never fetches them mid-request.
type SimulateRequest struct {
	TotalLaps        int                             `json:"total_laps" binding:"required"`
	PitLossSeconds   float64                         `json:"pit_loss_seconds"`
	BaseLapTimeS     float64                         `json:"base_lap_time_s" binding:"required"`
	TrackTempC       *float64                        `json:"track_temp_c,omitempty"`
	CircuitKey       string                          `json:"circuit_key,omitempty"`
	WeatherCondition string                          `json:"weather_condition"`
	RainIntensity    float64                         `json:"rain_intensity"`
	Compounds        map[string]model.CompoundParams `json:"compounds" binding:"required"`
	Historical       *model.HistoricalProfile        `json:"historical,omitempty"`
	CompoundRoles    map[string]string               `json:"compound_roles,omitempty"`
	IncludeRuleHits  bool                            `json:"include_rule_hits"`
}
