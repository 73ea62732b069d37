package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitwall/internal/model"
)

func sampleStrategy() model.Strategy {
	return model.Strategy{
		Name:             "1-Stop: C4 → C3",
		Stops:            1,
		TotalTimeS:       5400.123,
		TotalTimeDisplay: "1:30:00.123",
		PitStopLaps:      []int{22},
		Stints: []model.Stint{
			{StintNumber: 1, Compound: "C4", StartLap: 1, EndLap: 22, Laps: 22, AvgLapTimeS: 91.2, FinalLapTimeS: 93.1, CliffLaps: 4},
			{StintNumber: 2, Compound: "C3", StartLap: 23, EndLap: 58, Laps: 36, AvgLapTimeS: 91.8, FinalLapTimeS: 94.0, CliffLaps: 12},
		},
	}
}

func TestExtractRules_CategoriesAndOrder(t *testing.T) {
	s := sampleStrategy()
	ranked := model.RankedResult{Strategies: []model.Strategy{s}, Recommended: s.Name, DeltaS: 1.2}
	weather := model.WeatherState{Condition: model.ConditionDry}

	hits := ExtractRules(s, ranked, weather)
	require.NotEmpty(t, hits)

	// Weather first, then Strategy, Stint, Historical.
	assert.Equal(t, model.RuleCategoryWeather, hits[0].Category)
	lastSeen := map[string]int{}
	for i, h := range hits {
		lastSeen[h.Category] = i
	}
	assert.Less(t, lastSeen[model.RuleCategoryWeather], lastSeen[model.RuleCategoryStrategy])
	assert.Less(t, lastSeen[model.RuleCategoryStrategy], lastSeen[model.RuleCategoryStint])

	byName := map[string]model.RuleHit{}
	for _, h := range hits {
		byName[h.RuleName] = h
	}
	assert.Equal(t, "dry (rain intensity 0.00)", byName["track_condition"].ObservedValue)
	assert.Equal(t, "1 stop(s)", byName["stop_count"].ObservedValue)
	assert.Equal(t, "pit stops at L22", byName["stop_count"].Impact)
	assert.Equal(t, "C4 L1–L22 (22 laps)", byName["stint_1"].ObservedValue)
	assert.Contains(t, byName["recommendation"].Impact, "1.200s")
}

func TestExtractRules_RecommendationOnlyForWinner(t *testing.T) {
	s := sampleStrategy()
	ranked := model.RankedResult{Recommended: "2-Stop: C4 → C3 → C4"}
	hits := ExtractRules(s, ranked, model.WeatherState{Condition: model.ConditionDry})
	for _, h := range hits {
		assert.NotEqual(t, "recommendation", h.RuleName)
	}
}

func TestExtractRules_HistoricalFacts(t *testing.T) {
	s := sampleStrategy()
	s.HistoricalAdjustmentS = -0.9
	s.HistoricalNotes = []string{"Matches historical sequence MEDIUM → HARD (60% of races)"}
	ranked := model.RankedResult{Recommended: s.Name}

	hits := ExtractRules(s, ranked, model.WeatherState{Condition: model.ConditionDry})
	byName := map[string]model.RuleHit{}
	for _, h := range hits {
		byName[h.RuleName] = h
	}
	assert.Equal(t, "-0.900s", byName["historical_adjustment"].ObservedValue)
	assert.Equal(t, s.HistoricalNotes[0], byName["historical_note"].ObservedValue)
}

func TestExtractRules_NoHistoricalFactsWhenZero(t *testing.T) {
	s := sampleStrategy()
	hits := ExtractRules(s, model.RankedResult{}, model.WeatherState{Condition: model.ConditionDry})
	for _, h := range hits {
		assert.NotEqual(t, model.RuleCategoryHistorical, h.Category)
	}
}

func TestExtractRules_Reproducible(t *testing.T) {
	s := sampleStrategy()
	ranked := model.RankedResult{Strategies: []model.Strategy{s}, Recommended: s.Name, DeltaS: 1.2}
	weather := model.WeatherState{Condition: model.ConditionDamp, RainIntensity: 0.3}

	first := ExtractRules(s, ranked, weather)
	second := ExtractRules(s, ranked, weather)
	assert.Empty(t, cmp.Diff(first, second))
}
