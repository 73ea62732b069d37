package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"pitwall/internal/historical"
	"pitwall/internal/sim"
)

// Config is the on-disk configuration shape (YAML). Absent fields keep
// their defaults, so configs only need to state what they change.
type Config struct {
	// Optional: load a per-circuit compound catalogue from JSON. When empty
	// the generic fallback catalogue is used.
	CompoundsFile string `yaml:"compounds_file"`

	Engine     sim.Options        `yaml:"engine"`
	Historical historical.Weights `yaml:"historical"`
	API        APIConfig          `yaml:"api"`
}

type APIConfig struct {
	Port            string        `yaml:"port"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	WeatherCacheTTL time.Duration `yaml:"weather_cache_ttl"`
}

// Default returns the full default configuration.
func Default() *Config {
	return &Config{
		Engine:     sim.DefaultOptions(),
		Historical: historical.DefaultWeights(),
		API: APIConfig{
			Port:            "8080",
			WeatherCacheTTL: time.Hour,
		},
	}
}

// Load reads a YAML config, overlaying it on the defaults, and validates
// the result. An empty path returns the validated defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	e := c.Engine
	if len(e.StopCounts) == 0 {
		return errors.New("engine.stop_counts must not be empty")
	}
	for _, s := range e.StopCounts {
		if s < 0 || s > 2 {
			return fmt.Errorf("engine.stop_counts: %d outside supported range [0, 2]", s)
		}
	}
	if e.MinStintLaps < 1 {
		return errors.New("engine.min_stint_laps must be >= 1")
	}
	if e.StintSlackLaps < 0 {
		return errors.New("engine.stint_slack_laps must be >= 0")
	}
	if e.CoarseStepLaps < 1 {
		return errors.New("engine.coarse_step_laps must be >= 1")
	}
	if e.SearchRadiusLaps < 0 {
		return errors.New("engine.search_radius_laps must be >= 0")
	}
	if e.ShortlistPerStopCount < 1 || e.WetShortlist < 1 {
		return errors.New("engine shortlist sizes must be >= 1")
	}
	w := e.Wet
	for name, v := range map[string]float64{
		"crossover_coeff_damp":     w.CrossoverCoeffDamp,
		"crossover_coeff_wet":      w.CrossoverCoeffWet,
		"crossover_coeff_extreme":  w.CrossoverCoeffExtreme,
		"overheat_cliff_rate":      w.OverheatCliffRate,
		"slick_wet_penalty_s":      w.SlickWetPenaltyS,
		"inter_overheat_penalty_s": w.InterOverheatPenaltyS,
		"wet_drying_penalty_s":     w.WetDryingPenaltyS,
	} {
		if v < 0 {
			return fmt.Errorf("engine.wet.%s must be >= 0", name)
		}
	}
	h := c.Historical
	if h.Master < 0 {
		return errors.New("historical.master must be >= 0")
	}
	if h.MaxAdjustmentS < 0 {
		return errors.New("historical.max_adjustment_s must be >= 0")
	}
	if c.API.Port == "" {
		return errors.New("api.port must not be empty")
	}
	return nil
}
