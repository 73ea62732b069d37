package main

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"pitwall/internal/historical"
	"pitwall/internal/model"
	"pitwall/internal/sim"
)

// Demo:
// - Build a dry 58-lap race with two compounds from hand-picked parameters
// - Run the full engine pipeline
// - Print the ranked strategies and the extracted facts
func main() {
	outCSV := flag.String("out", "", "Optional path to write stint-level CSV")
	flag.Parse()

	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)

	req := sim.Request{
		Race: model.RaceConfig{
			TotalLaps:      58,
			PitLossSeconds: 22.0,
			BaseLapTimeS:   90.0,
		},
		Weather: model.WeatherState{Condition: model.ConditionDry},
		Compounds: map[string]model.CompoundParams{
			"C3": {AvgDegSPerLap: 0.08, CliffOnsetLap: 20, CliffRateSPerLap2: 0.01, TypicalMaxStintLaps: 25, BasePaceOffset: 0.6},
			"C4": {AvgDegSPerLap: 0.12, CliffOnsetLap: 15, CliffRateSPerLap2: 0.02, TypicalMaxStintLaps: 20, BasePaceOffset: 0.0},
		},
	}

	engine := sim.New(sim.DefaultOptions(), historical.DefaultWeights(), log)
	result, err := engine.Run(req)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	fmt.Printf("Recommended: %s (margin %.3fs)\n\n", result.Recommended, result.DeltaS)
	for i, s := range result.Strategies {
		fmt.Printf("%d. %s  total %s\n", i+1, s.Name, s.TotalTimeDisplay)
		for _, st := range s.Stints {
			fmt.Printf("   stint %d: %s L%d-L%d  avg %.3fs  cliff laps %d\n",
				st.StintNumber, st.Compound, st.StartLap, st.EndLap, st.AvgLapTimeS, st.CliffLaps)
		}
		for _, hit := range result.Rules[i] {
			fmt.Printf("   [%s] %s: %s\n", hit.Category, hit.RuleName, hit.ObservedValue)
		}
		fmt.Println()
	}

	if *outCSV != "" {
		if err := sim.WriteStrategiesCSV(*outCSV, result.Strategies); err != nil {
			log.Fatalf("Could not write CSV: %v", err)
		}
		fmt.Printf("Wrote %s\n", *outCSV)
	}
}
