package sim

import (
	"encoding/csv"
	"os"
	"strconv"

	"pitwall/internal/model"
)

// WriteStrategiesCSV writes the ranked strategies as one row per stint,
// best strategy first.
func WriteStrategiesCSV(path string, strategies []model.Strategy) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"rank",
		"strategy",
		"stops",
		"total_time_s",
		"total_time_display",
		"historical_adjustment_s",
		"stint_number",
		"compound",
		"start_lap",
		"end_lap",
		"laps",
		"stint_time_s",
		"avg_lap_time_s",
		"final_lap_time_s",
		"cliff_laps",
		"is_wet_tyre",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for rank, s := range strategies {
		for _, st := range s.Stints {
			row := []string{
				strconv.Itoa(rank + 1),
				s.Name,
				strconv.Itoa(s.Stops),
				fmtFloat(s.TotalTimeS),
				s.TotalTimeDisplay,
				fmtFloat(s.HistoricalAdjustmentS),
				strconv.Itoa(st.StintNumber),
				st.Compound,
				strconv.Itoa(st.StartLap),
				strconv.Itoa(st.EndLap),
				strconv.Itoa(st.Laps),
				fmtFloat(st.StintTimeS),
				fmtFloat(st.AvgLapTimeS),
				fmtFloat(st.FinalLapTimeS),
				strconv.Itoa(st.CliffLaps),
				strconv.FormatBool(st.IsWetTyre),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 3, 64)
}
