package analysis

import (
	"fmt"
	"strings"

	"pitwall/internal/model"
)

// ExtractRules converts one ranked strategy into categorized, literal rule
// hits for downstream explanation rendering. It is a pure transcription of
// already-computed values: no lookups, no new computation, no randomness.
// Identical inputs always produce identical hits, so the output can be
// golden-tested.
func ExtractRules(s model.Strategy, ranked model.RankedResult, weather model.WeatherState) []model.RuleHit {
	var hits []model.RuleHit

	// Weather facts.
	hits = append(hits, model.RuleHit{
		Category:      model.RuleCategoryWeather,
		RuleName:      "track_condition",
		ObservedValue: fmt.Sprintf("%s (rain intensity %.2f)", weather.Condition, weather.RainIntensity),
		Impact:        fmt.Sprintf("base lap time scaled ×%.2f", model.ConditionMultiplier(weather.Condition)),
	})
	if s.WeatherNote != "" {
		hits = append(hits, model.RuleHit{
			Category:      model.RuleCategoryWeather,
			RuleName:      "weather_note",
			ObservedValue: s.WeatherNote,
			Impact:        "constrains the legal compound sequence",
		})
	}

	// Strategy facts.
	stopDesc := "no pit stops"
	if len(s.PitStopLaps) > 0 {
		lapStrs := make([]string, len(s.PitStopLaps))
		for i, l := range s.PitStopLaps {
			lapStrs[i] = fmt.Sprintf("L%d", l)
		}
		stopDesc = "pit stops at " + strings.Join(lapStrs, ", ")
	}
	hits = append(hits, model.RuleHit{
		Category:      model.RuleCategoryStrategy,
		RuleName:      "stop_count",
		ObservedValue: fmt.Sprintf("%d stop(s)", s.Stops),
		Impact:        stopDesc,
	})
	hits = append(hits, model.RuleHit{
		Category:      model.RuleCategoryStrategy,
		RuleName:      "total_time",
		ObservedValue: s.TotalTimeDisplay,
		Impact:        fmt.Sprintf("%.3fs simulated race time", s.TotalTimeS),
	})
	if s.Name == ranked.Recommended {
		hits = append(hits, model.RuleHit{
			Category:      model.RuleCategoryStrategy,
			RuleName:      "recommendation",
			ObservedValue: s.Name,
			Impact:        fmt.Sprintf("fastest option by %.3fs effective margin", ranked.DeltaS),
		})
	}

	// Stint facts.
	for _, st := range s.Stints {
		hits = append(hits, model.RuleHit{
			Category: model.RuleCategoryStint,
			RuleName: fmt.Sprintf("stint_%d", st.StintNumber),
			ObservedValue: fmt.Sprintf("%s L%d–L%d (%d laps)",
				st.Compound, st.StartLap, st.EndLap, st.Laps),
			Impact: fmt.Sprintf("avg %.3fs, final lap %.3fs, %d lap(s) past cliff",
				st.AvgLapTimeS, st.FinalLapTimeS, st.CliffLaps),
		})
	}

	// Historical facts.
	if s.HistoricalAdjustmentS != 0 {
		hits = append(hits, model.RuleHit{
			Category:      model.RuleCategoryHistorical,
			RuleName:      "historical_adjustment",
			ObservedValue: fmt.Sprintf("%+.3fs", s.HistoricalAdjustmentS),
			Impact:        "advisory nudge; never overrides a clear physics margin",
		})
	}
	for _, note := range s.HistoricalNotes {
		hits = append(hits, model.RuleHit{
			Category:      model.RuleCategoryHistorical,
			RuleName:      "historical_note",
			ObservedValue: note,
			Impact:        "context from circuit history",
		})
	}

	return hits
}
