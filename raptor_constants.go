package raptor

// Keep selects which of the three result projections (spec.md §4.2/§4.3) a
// Run() result is shaped into.
type Keep string

const (
	KeepEarliest Keep = "earliest"
	KeepShortest Keep = "shortest"
	KeepAll      Keep = "all"
)

// DefaultMaxTransfers is the round cap K used when RaptorInput.MaxTransfers
// is left unset. spec.md §9 leaves the exact value an implementation
// constant "like 10, sufficient for realistic transit networks."
const DefaultMaxTransfers = 10

// DefaultDepartureWindowSeconds is used whenever a caller omits
// departure_time_range (Run and the travel_times wrapper both fall back to
// it; spec.md §4.5 states this default explicitly for the wrapper, and
// scenario 4 in spec.md §8 invokes the core with "Δ=default", so the same
// fallback applies to Run itself).
const DefaultDepartureWindowSeconds TimestampSeconds = 3600

// unboundedWindow stands in for "no upper bound" when searching for a
// boardable trip in rounds after the first (spec.md §4.2: the
// departure_time_range only constrains the very first boarding).
const unboundedWindow = TimestampSeconds(1 << 62)
