package raptor

// StopID, TripID and TimestampSeconds are plain aliases rather than the
// teacher's generic UniqueGtfsIdLike type parameter: this spec's data model
// (spec.md §3) is defined directly over GTFS-style string ids and a single
// feed, so there is no cross-feed id-type parameterization to preserve.
type StopID = string
type TripID = string
type TimestampSeconds = int

// Stop is a single GTFS stop/platform: identity stop_id, human stop_name
// (non-unique — platforms of the same station commonly share a name).
type Stop struct {
	StopID   StopID
	StopName string
}

// StopTime is one row per (trip, stop visit). spec.md §3's invariant
// (departure_time[i] >= arrival_time[i] >= departure_time[i-1] within a
// trip) is enforced by Store construction, not here.
type StopTime struct {
	TripID               TripID
	StopID               StopID
	StopSequence         int
	ArrivalTimeSeconds   TimestampSeconds
	DepartureTimeSeconds TimestampSeconds
}

// Transfer is a directed footpath edge. Self-transfers are allowed.
type Transfer struct {
	FromStopID             StopID
	ToStopID               StopID
	MinTransferTimeSeconds int
}

// TimetableTables is the full, unfiltered timetable as consumed by Filter.
type TimetableTables struct {
	StopTimes []StopTime
	Transfers []Transfer
	Stops     []Stop
}

// CalendarDate is the already-resolved service-date collaborator spec.md §1
// calls out as out of scope for this engine: calendar/calendar_dates
// expansion happens upstream, and Filter is handed the resulting set of
// trip_ids active on the date directly.
type CalendarDate struct {
	Date          string
	ActiveTripIDs map[TripID]bool
}

// TimeWindow is the absolute [MinSeconds, MaxSeconds) departure-time window
// Filter restricts stop_times to.
type TimeWindow struct {
	MinSeconds TimestampSeconds
	MaxSeconds TimestampSeconds
}

// FilteredStopTimes is the bundle Filter produces: filtered stop_times plus
// the transfers and stops tables attached as metadata, so that every
// downstream call (RAPTOR, travel_times) is total over a single value
// (spec.md §9: "model this as an explicit bundle struct; do not rely on
// ambient attributes").
type FilteredStopTimes struct {
	StopTimes []StopTime
	Transfers []Transfer
	Stops     []Stop
}

// ResultRow is the stable six-column output schema from spec.md §4.3/§6.
type ResultRow struct {
	StopID               StopID           `csv:"stop_id"`
	TravelTimeSeconds    TimestampSeconds `csv:"travel_time"`
	JourneyDepartureTime TimestampSeconds `csv:"journey_departure_time"`
	JourneyArrivalTime   TimestampSeconds `csv:"journey_arrival_time"`
	MinArrivalTime       TimestampSeconds `csv:"min_arrival_time"`
	Transfers            int              `csv:"transfers"`
}

// TravelTimesRow is ResultRow aggregated by destination stop_name
// (spec.md §6: "for travel_times: add stop_name, drop per-platform
// duplicates").
type TravelTimesRow struct {
	StopName             string           `csv:"stop_name"`
	TravelTimeSeconds    TimestampSeconds `csv:"travel_time"`
	JourneyDepartureTime TimestampSeconds `csv:"journey_departure_time"`
	JourneyArrivalTime   TimestampSeconds `csv:"journey_arrival_time"`
	MinArrivalTime       TimestampSeconds `csv:"min_arrival_time"`
	Transfers            int              `csv:"transfers"`
}

// stopLabel is the per-stop RAPTOR label (spec.md §3): best arrival found so
// far, how many trips were boarded to reach it (transfers are derived from
// this, not stored directly — footpaths never increment it), and the
// departure time of the very first leg of the witness (carried through
// unchanged once set, for journey_departure_time).
type stopLabel struct {
	arrival          TimestampSeconds
	boardings        int
	journeyDeparture TimestampSeconds
}

// transfers implements spec.md §4.2's counting rule: "number of boardings
// along the witness path minus 1 if reached by boarding; origins have 0."
func (l *stopLabel) transfers() int {
	if l.boardings <= 1 {
		return 0
	}
	return l.boardings - 1
}
