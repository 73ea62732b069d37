package model

import "fmt"

// Stint is one contiguous run of laps on a single compound. Lap numbers are
// 1-indexed race laps; stints of a strategy are contiguous, non-overlapping
// and cover the race exactly.
type Stint struct {
	StintNumber   int     `json:"stint_number"`
	Compound      string  `json:"compound"`
	StartLap      int     `json:"start_lap"`
	EndLap        int     `json:"end_lap"`
	Laps          int     `json:"laps"`
	StintTimeS    float64 `json:"stint_time_s"`
	AvgLapTimeS   float64 `json:"avg_lap_time_s"`
	FinalLapTimeS float64 `json:"final_lap_time_s"`
	CliffLaps     int     `json:"cliff_laps"`
	IsWetTyre     bool    `json:"is_wet_tyre"`
}

// Strategy is one fully simulated candidate. Immutable once produced:
// HistoricalAdjustmentS is advisory metadata and is never folded into
// TotalTimeS, so the physics result stays auditable.
type Strategy struct {
	Name                  string   `json:"name"`
	Stops                 int      `json:"stops"`
	TotalTimeS            float64  `json:"total_time_s"`
	TotalTimeDisplay      string   `json:"total_time_display"`
	PitStopLaps           []int    `json:"pit_stop_laps"`
	Stints                []Stint  `json:"stints"`
	WeatherNote           string   `json:"weather_note,omitempty"`
	HistoricalAdjustmentS float64  `json:"historical_adjustment_s"`
	HistoricalNotes       []string `json:"historical_notes,omitempty"`
}

// EffectiveScore is the ranking score: physics time plus the bounded
// historical nudge.
func (s Strategy) EffectiveScore() float64 {
	return s.TotalTimeS + s.HistoricalAdjustmentS
}

// FirstStopLap returns the lap of the first pit stop, or 0 for a 0-stop.
func (s Strategy) FirstStopLap() int {
	if len(s.PitStopLaps) == 0 {
		return 0
	}
	return s.PitStopLaps[0]
}

// CompoundSequence lists the stint compounds in order.
func (s Strategy) CompoundSequence() []string {
	seq := make([]string, len(s.Stints))
	for i, st := range s.Stints {
		seq[i] = st.Compound
	}
	return seq
}

// RankedResult is the engine output: strategies best first, plus the
// recommendation and winning margin (in effective score).
type RankedResult struct {
	Strategies  []Strategy `json:"strategies"`
	Recommended string     `json:"recommended"`
	DeltaS      float64    `json:"delta_s"`
}

// RuleHit categories. Order here is the emission order of the extractor.
const (
	RuleCategoryWeather    = "Weather"
	RuleCategoryStrategy   = "Strategy"
	RuleCategoryStint      = "Stint"
	RuleCategoryHistorical = "Historical"
)

// RuleHit is a single literal fact extracted from a simulated strategy.
// ObservedValue and Impact are pre-formatted; downstream rendering may
// rephrase them but must not re-derive anything.
type RuleHit struct {
	Category      string `json:"category"`
	RuleName      string `json:"rule_name"`
	ObservedValue string `json:"observed_value"`
	Impact        string `json:"impact"`
}

// FormatRaceTime renders seconds as H:MM:SS.mmm for display fields.
func FormatRaceTime(totalSeconds float64) string {
	h := int(totalSeconds) / 3600
	m := (int(totalSeconds) % 3600) / 60
	s := totalSeconds - float64(h*3600+m*60)
	return fmt.Sprintf("%d:%02d:%06.3f", h, m, s)
}
