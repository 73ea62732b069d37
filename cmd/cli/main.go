package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pitwall/internal/config"
	"pitwall/internal/data"
	"pitwall/internal/model"
	"pitwall/internal/sim"
)

var (
	logLevel string // Log verbosity level
	cfgPath  string // Optional YAML config

	// simulate flags
	totalLaps      int
	pitLoss        float64
	baseLapTime    float64
	condition      string
	rainIntensity  float64
	circuit        string
	year           int
	trackTemp      float64
	compoundsFile  string
	historicalFile string
	outCSV         string
	showRules      bool

	// compounds flags
	compCircuit   string
	compYear      int
	compTrackTemp float64
)

var rootCmd = &cobra.Command{
	Use:   "pitwall",
	Short: "Deterministic race strategy simulator",
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate and rank pit-stop strategies for one race",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		log := logrus.New()
		log.SetLevel(level)

		cfg, err := config.Load(cfgPath)
		if err != nil {
			log.Fatalf("Could not load config: %v", err)
		}

		catalogue := data.FallbackCompounds()
		if compoundsFile != "" {
			catalogue, err = data.LoadCompoundsJSON(compoundsFile)
			if err != nil {
				log.Fatalf("Could not load compounds: %v", err)
			}
		} else if cfg.CompoundsFile != "" {
			catalogue, err = data.LoadCompoundsJSON(cfg.CompoundsFile)
			if err != nil {
				log.Fatalf("Could not load compounds: %v", err)
			}
		}

		var roles map[string]string
		if circuit != "" {
			nom := data.GetNomination(year, circuit)
			catalogue = data.NominatedCompounds(catalogue, nom)
			roles = nom.Roles()
			log.Infof("Nomination for %s (%d): %v", circuit, year, nom.Codes())
		}

		req := sim.Request{
			Race: model.RaceConfig{
				TotalLaps:      totalLaps,
				PitLossSeconds: pitLoss,
				BaseLapTimeS:   baseLapTime,
				CircuitKey:     data.NormalizeCircuitKey(circuit),
			},
			Weather: model.WeatherState{
				Condition:     model.Condition(condition),
				RainIntensity: rainIntensity,
			},
			Compounds:     catalogue,
			CompoundRoles: roles,
		}
		if cmd.Flags().Changed("track-temp") {
			req.Race.TrackTempC = &trackTemp
			req.Compounds = data.ApplyTempAdjustment(req.Compounds, trackTemp)
		}
		if historicalFile != "" {
			profile, err := data.LoadHistoricalProfileJSON(historicalFile)
			if err != nil {
				log.Fatalf("Could not load historical profile: %v", err)
			}
			req.Historical = profile
		}

		engine := sim.New(cfg.Engine, cfg.Historical, log)
		result, err := engine.Run(req)
		if err != nil {
			log.Fatalf("Simulation failed: %v", err)
		}

		printResult(result)
		if outCSV != "" {
			if err := sim.WriteStrategiesCSV(outCSV, result.Strategies); err != nil {
				log.Fatalf("Could not write CSV: %v", err)
			}
			fmt.Printf("\nWrote %s\n", outCSV)
		}
	},
}

var compoundsCmd = &cobra.Command{
	Use:   "compounds",
	Short: "Print the compound parameter catalogue as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		catalogue := data.FallbackCompounds()
		if compCircuit != "" {
			nom := data.GetNomination(compYear, compCircuit)
			catalogue = data.NominatedCompounds(catalogue, nom)
		}
		if cmd.Flags().Changed("track-temp") {
			catalogue = data.ApplyTempAdjustment(catalogue, compTrackTemp)
		}
		out, err := json.MarshalIndent(catalogue, "", "  ")
		if err != nil {
			logrus.Fatalf("Could not marshal catalogue: %v", err)
		}
		fmt.Println(string(out))
	},
}

func printResult(result *sim.Result) {
	for _, note := range result.Notes {
		fmt.Printf("note: %s\n", note)
	}
	fmt.Printf("\nRecommended: %s (margin %.3fs)\n\n", result.Recommended, result.DeltaS)
	for i, s := range result.Strategies {
		fmt.Printf("%d. %s  total %s", i+1, s.Name, s.TotalTimeDisplay)
		if s.HistoricalAdjustmentS != 0 {
			fmt.Printf("  (historical %+.3fs)", s.HistoricalAdjustmentS)
		}
		fmt.Println()
		for _, st := range s.Stints {
			fmt.Printf("   stint %d: %-12s L%d-L%d (%d laps)  avg %.3fs  final %.3fs\n",
				st.StintNumber, st.Compound, st.StartLap, st.EndLap, st.Laps, st.AvgLapTimeS, st.FinalLapTimeS)
		}
		for _, n := range s.HistoricalNotes {
			fmt.Printf("   note: %s\n", n)
		}
		if showRules && i < len(result.Rules) {
			for _, hit := range result.Rules[i] {
				fmt.Printf("   [%s] %s: %s (%s)\n", hit.Category, hit.RuleName, hit.ObservedValue, hit.Impact)
			}
		}
		fmt.Println()
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config")

	simulateCmd.Flags().IntVar(&totalLaps, "laps", 58, "Race distance in laps")
	simulateCmd.Flags().Float64Var(&pitLoss, "pit-loss", 22.0, "Total time lost per pit stop (s)")
	simulateCmd.Flags().Float64Var(&baseLapTime, "base-lap", 90.0, "Base dry lap time on fresh softest tyres (s)")
	simulateCmd.Flags().StringVar(&condition, "condition", "dry", "Track condition (dry, damp, wet, extreme)")
	simulateCmd.Flags().Float64Var(&rainIntensity, "rain", 0, "Rain intensity in [0, 1]")
	simulateCmd.Flags().StringVar(&circuit, "circuit", "", "Circuit key for tyre nomination and naming")
	simulateCmd.Flags().IntVar(&year, "year", time.Now().Year(), "Season for the tyre nomination lookup")
	simulateCmd.Flags().Float64Var(&trackTemp, "track-temp", 25.0, "Track temperature (°C)")
	simulateCmd.Flags().StringVar(&compoundsFile, "compounds", "", "Path to compound catalogue JSON")
	simulateCmd.Flags().StringVar(&historicalFile, "historical", "", "Path to historical circuit profile JSON")
	simulateCmd.Flags().StringVar(&outCSV, "out", "", "Optional path to write stint-level CSV")
	simulateCmd.Flags().BoolVar(&showRules, "rules", false, "Print extracted strategy facts")

	compoundsCmd.Flags().StringVar(&compCircuit, "circuit", "", "Circuit key to narrow to the nomination")
	compoundsCmd.Flags().IntVar(&compYear, "year", time.Now().Year(), "Season for the nomination lookup")
	compoundsCmd.Flags().Float64Var(&compTrackTemp, "track-temp", 25.0, "Track temperature (°C)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(compoundsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
