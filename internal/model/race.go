package model

import "fmt"

// Condition is the track weather state the engine plans for. It is handed in
// by the weather collaborator; the engine never re-derives it from rain data.
type Condition string

const (
	ConditionDry     Condition = "dry"
	ConditionDamp    Condition = "damp"
	ConditionWet     Condition = "wet"
	ConditionExtreme Condition = "extreme"
)

// ConditionMultiplier scales the base lap time for the track surface state.
// Applied to the whole field equally, so it never changes strategy ordering
// within one condition; it keeps absolute stint times realistic.
func ConditionMultiplier(c Condition) float64 {
	switch c {
	case ConditionDamp:
		return 1.06
	case ConditionWet:
		return 1.15
	case ConditionExtreme:
		return 1.35
	default:
		return 1.00
	}
}

// WeatherState is the resolved weather input for one simulation request.
// RainIntensity: 0 = bone dry, 1 = monsoon.
type WeatherState struct {
	Condition     Condition `json:"condition" yaml:"condition"`
	RainIntensity float64   `json:"rain_intensity" yaml:"rain_intensity"`
}

func (w WeatherState) Validate() error {
	switch w.Condition {
	case ConditionDry, ConditionDamp, ConditionWet, ConditionExtreme:
	default:
		return &ConfigError{Field: "condition", Reason: fmt.Sprintf("unknown condition %q", w.Condition)}
	}
	if w.RainIntensity < 0 || w.RainIntensity > 1 {
		return &ConfigError{Field: "rain_intensity", Reason: "must be within [0, 1]"}
	}
	return nil
}

// IsDry reports whether slicks are the only legal choice.
func (w WeatherState) IsDry() bool { return w.Condition == ConditionDry }

// RaceConfig describes the race being planned.
type RaceConfig struct {
	TotalLaps      int      `json:"total_laps" yaml:"total_laps"`
	PitLossSeconds float64  `json:"pit_loss_seconds" yaml:"pit_loss_seconds"`
	BaseLapTimeS   float64  `json:"base_lap_time_s" yaml:"base_lap_time_s"`
	TrackTempC     *float64 `json:"track_temp_c,omitempty" yaml:"track_temp_c,omitempty"`
	CircuitKey     string   `json:"circuit_key,omitempty" yaml:"circuit_key,omitempty"`
}

// ConfigError reports an invalid RaceConfig or WeatherState. The whole
// request is rejected; there is never a partial result.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

func (r RaceConfig) Validate() error {
	if r.TotalLaps <= 0 {
		return &ConfigError{Field: "total_laps", Reason: "must be > 0"}
	}
	if r.PitLossSeconds < 0 {
		return &ConfigError{Field: "pit_loss_seconds", Reason: "must be >= 0"}
	}
	if r.BaseLapTimeS <= 0 {
		return &ConfigError{Field: "base_lap_time_s", Reason: "must be > 0"}
	}
	return nil
}
