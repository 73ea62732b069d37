package sim

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitwall/internal/historical"
	"pitwall/internal/model"
)

func testEngine() *Engine {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return New(DefaultOptions(), historical.DefaultWeights(), log)
}

func dryRequest() Request {
	return Request{
		Race:      model.RaceConfig{TotalLaps: 58, PitLossSeconds: 22, BaseLapTimeS: 90},
		Weather:   model.WeatherState{Condition: model.ConditionDry},
		Compounds: twoSlickCatalogue(),
	}
}

func TestEngineRun_DryRace(t *testing.T) {
	result, err := testEngine().Run(dryRequest())
	require.NoError(t, err)
	require.NotEmpty(t, result.Strategies)

	assert.Equal(t, result.Strategies[0].Name, result.Recommended)
	assert.GreaterOrEqual(t, result.DeltaS, 0.0)
	require.Len(t, result.Rules, len(result.Strategies))

	for _, s := range result.Strategies {
		laps := 0
		for _, st := range s.Stints {
			laps += st.Laps
		}
		assert.Equal(t, 58, laps, "%s must cover the race", s.Name)
		assert.Len(t, s.PitStopLaps, s.Stops, s.Name)
		assert.Equal(t, 0.0, s.HistoricalAdjustmentS, "no profile, no adjustment")

		// Best-first by effective score within the physics cap.
		assert.LessOrEqual(t, result.Strategies[0].EffectiveScore(), s.EffectiveScore())
	}
}

func TestEngineRun_Deterministic(t *testing.T) {
	e := testEngine()
	first, err := e.Run(dryRequest())
	require.NoError(t, err)
	second, err := e.Run(dryRequest())
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, second), "identical requests must produce bit-identical results")
}

func TestEngineRun_ShortlistBounds(t *testing.T) {
	result, err := testEngine().Run(dryRequest())
	require.NoError(t, err)

	perStops := map[int]int{}
	for _, s := range result.Strategies {
		perStops[s.Stops]++
	}
	for stops, n := range perStops {
		assert.LessOrEqual(t, n, DefaultOptions().ShortlistPerStopCount, "%d-stop", stops)
	}
}

func TestEngineRun_RejectsInvalidConfig(t *testing.T) {
	req := dryRequest()
	req.Race.TotalLaps = 0

	_, err := testEngine().Run(req)
	var cfgErr *model.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "total_laps", cfgErr.Field)
}

func TestEngineRun_RejectsInvalidCompound(t *testing.T) {
	req := dryRequest()
	bad := req.Compounds["C3"]
	bad.AvgDegSPerLap = -1
	req.Compounds["C3"] = bad

	_, err := testEngine().Run(req)
	var compErr *model.InvalidCompoundParamsError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, "C3", compErr.Code)
}

func TestEngineRun_DryWithoutSlicksFails(t *testing.T) {
	req := dryRequest()
	req.Compounds = map[string]model.CompoundParams{
		model.CompoundIntermediate: model.DefaultIntermediateParams(),
	}

	_, err := testEngine().Run(req)
	var noLegal *NoLegalStrategyError
	require.ErrorAs(t, err, &noLegal)
}

func TestEngineRun_OverLengthRaceKeepsOneStops(t *testing.T) {
	// 58 laps against pair maximums of 25+20: no legal one-stop split
	// exists, yet both one-stops must still be offered on a balanced split.
	req := Request{
		Race:    model.RaceConfig{TotalLaps: 58, PitLossSeconds: 22, BaseLapTimeS: 90},
		Weather: model.WeatherState{Condition: model.ConditionDry},
		Compounds: map[string]model.CompoundParams{
			"C3": {AvgDegSPerLap: 0.08, CliffOnsetLap: 20, CliffRateSPerLap2: 0.01, TypicalMaxStintLaps: 25, BasePaceOffset: 0.6},
			"C4": {AvgDegSPerLap: 0.12, CliffOnsetLap: 15, CliffRateSPerLap2: 0.02, TypicalMaxStintLaps: 20},
		},
	}

	result, err := testEngine().Run(req)
	require.NoError(t, err)

	var target *model.Strategy
	for i := range result.Strategies {
		if result.Strategies[i].Name == "1-Stop: C4 → C3" {
			target = &result.Strategies[i]
		}
	}
	require.NotNil(t, target, "over-length one-stop must survive to the ranking")

	laps := 0
	for _, st := range target.Stints {
		laps += st.Laps
	}
	assert.Equal(t, 58, laps)
	assert.NotEmpty(t, target.WeatherNote, "the overrun must be flagged")
	assert.Len(t, target.PitStopLaps, 1)
}

func TestEngineRun_MarathonRaceRelaxesMaximums(t *testing.T) {
	req := dryRequest()
	req.Race.TotalLaps = 200

	result, err := testEngine().Run(req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Strategies)
	assert.NotEmpty(t, result.Notes, "the relaxation must be announced")

	for _, s := range result.Strategies {
		laps := 0
		for _, st := range s.Stints {
			laps += st.Laps
		}
		assert.Equal(t, 200, laps, s.Name)
	}
}

func TestEngineRun_NoLegalShape(t *testing.T) {
	// A single slick cannot satisfy the two-compound rule, and at 58 laps
	// the single-stint relaxation is out of reach too.
	req := dryRequest()
	req.Compounds = map[string]model.CompoundParams{
		"C3": {AvgDegSPerLap: 0.065, CliffOnsetLap: 24, CliffRateSPerLap2: 0.012, TypicalMaxStintLaps: 32, BasePaceOffset: 0.7},
	}

	_, err := testEngine().Run(req)
	var noLegal *NoLegalStrategyError
	require.ErrorAs(t, err, &noLegal)
}

func TestEngineRun_WetFallbackSubstitutesParams(t *testing.T) {
	req := dryRequest()
	req.Weather = model.WeatherState{Condition: model.ConditionWet, RainIntensity: 0.55}

	result, err := testEngine().Run(req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Strategies)
	assert.NotEmpty(t, result.Notes, "substitution must be announced")
	assert.LessOrEqual(t, len(result.Strategies), DefaultOptions().WetShortlist)
}

func TestEngineRun_WetWithoutFallbackFails(t *testing.T) {
	opts := DefaultOptions()
	opts.FallbackWetParams = false
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	e := New(opts, historical.DefaultWeights(), log)

	req := dryRequest()
	req.Weather = model.WeatherState{Condition: model.ConditionWet, RainIntensity: 0.55}

	_, err := e.Run(req)
	var insuff *InsufficientCompoundDataError
	require.ErrorAs(t, err, &insuff)
	assert.Equal(t, model.CompoundIntermediate, insuff.Code)
}

func TestEngineRun_HistoricalAdjustmentStaysAdvisory(t *testing.T) {
	req := dryRequest()
	req.Historical = &model.HistoricalProfile{
		CircuitKey:   "silverstone",
		FirstStopLap: &model.FirstStopStats{Median: 18, P25: 15, P75: 21, N: 18},
	}

	plain, err := testEngine().Run(dryRequest())
	require.NoError(t, err)
	adjusted, err := testEngine().Run(req)
	require.NoError(t, err)

	byName := map[string]model.Strategy{}
	for _, s := range plain.Strategies {
		byName[s.Name] = s
	}
	for _, s := range adjusted.Strategies {
		p, ok := byName[s.Name]
		if !ok {
			continue
		}
		// Physics totals are untouched; the adjustment rides alongside.
		assert.Equal(t, p.TotalTimeS, s.TotalTimeS, s.Name)
		assert.LessOrEqual(t, s.HistoricalAdjustmentS, historical.DefaultWeights().MaxAdjustmentS)
		assert.GreaterOrEqual(t, s.HistoricalAdjustmentS, -historical.DefaultWeights().MaxAdjustmentS)
	}
}

func TestEngineRun_NilLoggerDefaults(t *testing.T) {
	e := New(DefaultOptions(), historical.DefaultWeights(), nil)
	_, err := e.Run(dryRequest())
	assert.NoError(t, err)
}

func TestEngineRun_ErrorsAreTyped(t *testing.T) {
	req := dryRequest()
	req.Weather.RainIntensity = 1.5

	_, err := testEngine().Run(req)
	require.Error(t, err)
	var cfgErr *model.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}
