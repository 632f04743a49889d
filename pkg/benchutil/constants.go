package benchutil

// BenchmarkSeed is the default seed for reproducible data generation.
const BenchmarkSeed = 42

// LongBenchEnv gates the scaling benchmarks.
const LongBenchEnv = "BRC_LONG_BENCH"

// BenchmarkSizes are line counts for quick runs.
var BenchmarkSizes = []int{1000, 10000, 100000}

// ScalingSizes are line counts used when LongBenchEnv is set.
var ScalingSizes = []int{1_000_000, 10_000_000, 50_000_000}

// baseStations seeds the station vocabulary. Mean temperatures are in tenths.
var baseStations = []struct {
	name string
	mean int
}{
	{"Abha", 180},
	{"Abidjan", 260},
	{"Abéché", 294},
	{"Accra", 264},
	{"Addis Ababa", 160},
	{"Adelaide", 173},
	{"Aden", 291},
	{"Ahvaz", 254},
	{"Albuquerque", 140},
	{"Alexandra", 110},
	{"Anchorage", 28},
	{"Assab", 305},
	{"Bulawayo", 189},
	{"Hamburg", 97},
	{"İzmir", 179},
	{"Jerusalem", 183},
	{"Kraków", 83},
	{"Oslo", 57},
	{"Palembang", 273},
	{"Petropavlovsk-Kamchatsky", 19},
	{"Reykjavík", 43},
	{"St. John's", 50},
	{"Tokyo", 154},
	{"Ürümqi", 74},
	{"Yakutsk", -88},
}
