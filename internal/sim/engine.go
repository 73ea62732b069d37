package sim

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pitwall/internal/analysis"
	"pitwall/internal/historical"
	"pitwall/internal/model"
)

// Engine runs one strategy simulation request end to end: enumerate, settle
// boundaries, simulate, adjust, rank, extract facts. It is pure over its
// inputs — no clock, no randomness, no I/O — so identical requests produce
// bit-identical results and a single instance is safe for concurrent use.
type Engine struct {
	opts    Options
	weights historical.Weights
	log     *logrus.Logger
}

func New(opts Options, weights historical.Weights, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{opts: opts, weights: weights, log: log}
}

// Request carries fully resolved inputs. Compound parameters, weather state
// and the historical profile must be fetched/validated upstream; the engine
// performs no I/O.
type Request struct {
	Race          model.RaceConfig
	Weather       model.WeatherState
	Compounds     map[string]model.CompoundParams
	Historical    *model.HistoricalProfile
	CompoundRoles map[string]string
}

// Result is the ranked outcome. Rules is aligned index-for-index with
// Strategies. Notes carry advisory request-level remarks (fallback
// substitutions, rule relaxations).
type Result struct {
	Strategies  []model.Strategy
	Recommended string
	DeltaS      float64
	Rules       [][]model.RuleHit
	Notes       []string
}

// Run executes the request. Errors are data/config problems reported once:
// ConfigError and compound validation reject the whole request;
// NoLegalStrategyError means nothing in the bounded search space was legal.
func (e *Engine) Run(req Request) (*Result, error) {
	if err := req.Race.Validate(); err != nil {
		return nil, err
	}
	if err := req.Weather.Validate(); err != nil {
		return nil, err
	}
	for code, p := range req.Compounds {
		if err := p.Validate(code); err != nil {
			return nil, err
		}
	}

	compounds, notes, err := e.resolveCompounds(req)
	if err != nil {
		return nil, err
	}
	if len(slickCodes(compounds)) == 0 && req.Weather.IsDry() {
		return nil, &NoLegalStrategyError{Reason: "no slick compound parameters supplied for a dry race"}
	}

	candidates, enumNotes := Enumerate(req.Race, req.Weather, compounds, e.opts)
	notes = append(notes, enumNotes...)
	if len(candidates) == 0 {
		return nil, &NoLegalStrategyError{Reason: "no candidate strategy shape is legal for this race length and compound set"}
	}
	e.log.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"condition":  req.Weather.Condition,
		"total_laps": req.Race.TotalLaps,
	}).Debug("candidate shapes enumerated")

	strategies := e.simulateAll(candidates, req)
	if len(strategies) == 0 {
		return nil, &NoLegalStrategyError{Reason: "every candidate shape exceeded the legal stint lengths"}
	}

	strategies = historical.Adjust(strategies, req.Historical, req.CompoundRoles, e.weights)
	strategies = e.shortlist(strategies, req.Weather)

	ranked := analysis.Rank(strategies, e.weights.MaxAdjustmentS)
	rules := make([][]model.RuleHit, len(ranked.Strategies))
	for i, s := range ranked.Strategies {
		rules[i] = analysis.ExtractRules(s, ranked, req.Weather)
	}

	return &Result{
		Strategies:  ranked.Strategies,
		Recommended: ranked.Recommended,
		DeltaS:      ranked.DeltaS,
		Rules:       rules,
		Notes:       notes,
	}, nil
}

// resolveCompounds fills in mandatory wet compounds the request omitted.
// Policy is caller-configurable: substitute built-in defaults with an
// advisory note (never silently), or fail with InsufficientCompoundData.
func (e *Engine) resolveCompounds(req Request) (map[string]model.CompoundParams, []string, error) {
	compounds := make(map[string]model.CompoundParams, len(req.Compounds)+2)
	for k, v := range req.Compounds {
		compounds[k] = v
	}
	var notes []string

	required := map[string]func() model.CompoundParams{}
	switch req.Weather.Condition {
	case model.ConditionDamp:
		required[model.CompoundIntermediate] = model.DefaultIntermediateParams
	case model.ConditionWet:
		required[model.CompoundIntermediate] = model.DefaultIntermediateParams
		required[model.CompoundWet] = model.DefaultWetParams
	case model.ConditionExtreme:
		required[model.CompoundWet] = model.DefaultWetParams
		required[model.CompoundIntermediate] = model.DefaultIntermediateParams
	}
	// Stable iteration over the (at most two) required codes.
	for _, code := range []string{model.CompoundIntermediate, model.CompoundWet} {
		defaults, ok := required[code]
		if !ok {
			continue
		}
		if _, present := compounds[code]; present {
			continue
		}
		if !e.opts.FallbackWetParams {
			return nil, nil, &InsufficientCompoundDataError{Code: code}
		}
		compounds[code] = defaults()
		notes = append(notes, fmt.Sprintf("No parameters supplied for %s; substituted built-in defaults.", code))
	}
	return compounds, notes, nil
}

// simulateAll settles boundaries and simulates each candidate. Candidates
// are independent, so they run concurrently; results land in an
// index-addressed slice, keeping output order — and therefore the final
// ranking input — deterministic.
func (e *Engine) simulateAll(candidates []Candidate, req Request) []model.Strategy {
	results := make([]*model.Strategy, len(candidates))
	effBase := req.Race.BaseLapTimeS * model.ConditionMultiplier(req.Weather.Condition)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			laps, ok := optimizeBoundaries(c, req.Race.TotalLaps, effBase, req.Weather, req.Race.TrackTempC, e.opts)
			if !ok {
				e.log.WithField("candidate", c.Name).Debug("dropped: no legal stint partition")
				return nil
			}
			s, err := buildStrategy(c, laps, req.Race, req.Weather, e.opts)
			if err != nil {
				return err
			}
			results[i] = &s
			return nil
		})
	}
	// The only error path in a worker is negative pit loss, rejected by
	// RaceConfig.Validate before we get here.
	_ = g.Wait()

	out := make([]model.Strategy, 0, len(results))
	for _, s := range results {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// shortlist trims the simulated set to the strategies worth ranking:
// the best few per stop count in the dry, a single top slice in the wet.
// Selection is by raw physics time; adjustments only reorder near-ties
// later, in the ranker.
func (e *Engine) shortlist(strategies []model.Strategy, weather model.WeatherState) []model.Strategy {
	byTime := make([]model.Strategy, len(strategies))
	copy(byTime, strategies)
	sort.SliceStable(byTime, func(i, j int) bool {
		if byTime[i].TotalTimeS != byTime[j].TotalTimeS {
			return byTime[i].TotalTimeS < byTime[j].TotalTimeS
		}
		return byTime[i].Name < byTime[j].Name
	})

	if !weather.IsDry() {
		if len(byTime) > e.opts.WetShortlist {
			byTime = byTime[:e.opts.WetShortlist]
		}
		return byTime
	}

	taken := map[int]int{}
	out := make([]model.Strategy, 0, len(byTime))
	for _, s := range byTime {
		if taken[s.Stops] >= e.opts.ShortlistPerStopCount {
			continue
		}
		taken[s.Stops]++
		out = append(out, s)
	}
	return out
}
