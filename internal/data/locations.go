package data

// CircuitLocation holds the coordinates used for weather lookups.
type CircuitLocation struct {
	Key  string  `json:"key"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Keys match the nomination table; lookups go through NormalizeCircuitKey.
var circuitLocations = map[string]CircuitLocation{
	"bahrain":           {"bahrain", "Bahrain International Circuit", 26.0325, 50.5106},
	"jeddah":            {"jeddah", "Jeddah Corniche Circuit", 21.6319, 39.1044},
	"melbourne":         {"melbourne", "Albert Park Circuit", -37.8497, 144.9680},
	"suzuka":            {"suzuka", "Suzuka International Racing Course", 34.8431, 136.5410},
	"shanghai":          {"shanghai", "Shanghai International Circuit", 31.3389, 121.2200},
	"miami":             {"miami", "Miami International Autodrome", 25.9581, -80.2389},
	"imola":             {"imola", "Autodromo Enzo e Dino Ferrari", 44.3439, 11.7167},
	"monaco":            {"monaco", "Circuit de Monaco", 43.7347, 7.4206},
	"montreal":          {"montreal", "Circuit Gilles Villeneuve", 45.5000, -73.5228},
	"barcelona":         {"barcelona", "Circuit de Barcelona-Catalunya", 41.5700, 2.2611},
	"spielberg":         {"spielberg", "Red Bull Ring", 47.2197, 14.7647},
	"silverstone":       {"silverstone", "Silverstone Circuit", 52.0786, -1.0169},
	"budapest":          {"budapest", "Hungaroring", 47.5789, 19.2486},
	"spa-francorchamps": {"spa-francorchamps", "Circuit de Spa-Francorchamps", 50.4372, 5.9714},
	"zandvoort":         {"zandvoort", "Circuit Zandvoort", 52.3888, 4.5409},
	"monza":             {"monza", "Autodromo Nazionale Monza", 45.6156, 9.2811},
	"baku":              {"baku", "Baku City Circuit", 40.3725, 49.8533},
	"singapore":         {"singapore", "Marina Bay Street Circuit", 1.2914, 103.8640},
	"austin":            {"austin", "Circuit of the Americas", 30.1328, -97.6411},
	"mexico city":       {"mexico city", "Autódromo Hermanos Rodríguez", 19.4042, -99.0907},
	"sao paulo":         {"sao paulo", "Autódromo José Carlos Pace", -23.7036, -46.6997},
	"las vegas":         {"las vegas", "Las Vegas Strip Circuit", 36.1147, -115.1728},
	"lusail":            {"lusail", "Lusail International Circuit", 25.4900, 51.4542},
	"yas marina":        {"yas marina", "Yas Marina Circuit", 24.4672, 54.6031},
}

// GetCircuitLocation looks up coordinates by circuit key.
func GetCircuitLocation(circuitKey string) (CircuitLocation, bool) {
	loc, ok := circuitLocations[NormalizeCircuitKey(circuitKey)]
	return loc, ok
}
