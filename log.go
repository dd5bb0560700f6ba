package raptor

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-level zerolog.Logger used for the NoData-class
// warnings spec.md §7 calls for (these never fail a call; they log and the
// caller gets an empty, schema-correct result back). Callers embedding this
// module can reassign it to route logs through their own sinks, the way
// other services in the pack configure a shared zerolog.Logger once at
// startup.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().Timestamp().Logger()

func warnUnknownOrOriginlessStops(fromStopIDs []string) {
	Logger.Warn().
		Strs("from_stop_ids", fromStopIDs).
		Msg("no recognized origin stop with any departure; returning empty result")
}

func warnNoDeparturesInWindow(fromStopIDs []string, window TimeWindow) {
	Logger.Warn().
		Strs("from_stop_ids", fromStopIDs).
		Int("window_min", window.MinSeconds).
		Int("window_max", window.MaxSeconds).
		Msg("no departures from origin stops fall in the requested window; returning empty result")
}

func warnBothWindowAndMaxDepartureSupplied() {
	Logger.Warn().
		Msg("both departure_time_range and max_departure_time were supplied; preferring max_departure_time")
}
