package raptor

// RaptorInput is what Run consumes (spec.md §4.2). Store may be supplied
// pre-built (e.g. reused across repeated calls against the same filtered
// timetable); if nil, Run builds one from StopTimes/Transfers.
type RaptorInput struct {
	StopTimes []StopTime
	Transfers []Transfer
	Store     *Store

	FromStopIDs []StopID

	// DepartureTimeRangeSeconds is Δ. Zero means "use the default"
	// (DefaultDepartureWindowSeconds); negative is rejected.
	DepartureTimeRangeSeconds TimestampSeconds

	// MaxTransfers is K, the round cap. Zero or negative means
	// DefaultMaxTransfers.
	MaxTransfers int

	Keep Keep
}

// RaptorResult holds the final label matrix (well, its best-per-stop
// projection plus the full Pareto history) that ShapeEarliest/ShapeShortest/
// ShapeAll read from. Labels and marks are owned exclusively by one Run call
// and never mutated after it returns (spec.md §5).
type RaptorResult struct {
	t0        TimestampSeconds
	keep      Keep
	fromStops map[StopID]bool
	best      map[StopID]*stopLabel
	rows      []ResultRow // at most one row per (stop, round) — the raw material for keep=all
	rowIndex  map[stopRound]int
}

// stopRound keys rows's one-per-(stop,round) dedup (spec.md §4.2's "one row
// per (stop, round) Pareto-distinct label"): a stop can be re-improved
// several times within a single round (once per pattern/footpath that
// touches it), and only the round's final, best label should survive as a
// keep=all row.
type stopRound struct {
	stopID StopID
	round  int
}

// Run is the RAPTOR core (spec.md §4.2): seeds t0 and origin labels, applies
// round-0 footpath relaxation, then runs up to K rounds of
// (route scan, footpath relaxation) until nothing more is marked.
func Run(input RaptorInput) (*RaptorResult, error) {
	if input.Keep != KeepEarliest && input.Keep != KeepShortest && input.Keep != KeepAll {
		return nil, invalidArgument("keep must be one of %q, %q, %q, got %q", KeepEarliest, KeepShortest, KeepAll, input.Keep)
	}
	if input.DepartureTimeRangeSeconds < 0 {
		return nil, invalidArgument("departure_time_range must be a positive number of seconds, got %d", input.DepartureTimeRangeSeconds)
	}
	departureWindow := input.DepartureTimeRangeSeconds
	if departureWindow == 0 {
		departureWindow = DefaultDepartureWindowSeconds
	}
	maxTransfers := input.MaxTransfers
	if maxTransfers <= 0 {
		maxTransfers = DefaultMaxTransfers
	}

	fromStops := map[StopID]bool{}
	for _, id := range input.FromStopIDs {
		if id != "" {
			fromStops[id] = true
		}
	}
	if len(fromStops) == 0 {
		warnUnknownOrOriginlessStops(input.FromStopIDs)
		return emptyResult(input.Keep), nil
	}

	store := input.Store
	if store == nil {
		store = NewStore(input.StopTimes, input.Transfers)
	}

	t0, ok := earliestDeparture(input.StopTimes, fromStops)
	if !ok {
		// spec.md §8: an origin that exists in the timetable but only as an
		// arrival (e.g. a terminal with no onward trip) still gets a single
		// origin row at travel_time=0 — it just never seeds a boarding, since
		// it has none. A stop with no record at all (not even an arrival) is
		// the §4.2 "no outgoing departure" case: warn and return nothing.
		if arrivalT0, arrivalOK := earliestArrival(input.StopTimes, fromStops); arrivalOK {
			return arrivalOnlyResult(input.Keep, fromStops, input.StopTimes, arrivalT0), nil
		}
		warnNoDeparturesInWindow(stopIDList(fromStops), TimeWindow{})
		return emptyResult(input.Keep), nil
	}

	result := &RaptorResult{t0: t0, keep: input.Keep, fromStops: fromStops, best: map[StopID]*stopLabel{}, rowIndex: map[stopRound]int{}}
	for stopID := range fromStops {
		result.setOrigin(stopID, t0)
	}

	// marked maps a stop to the ready-time RAPTOR should use when boarding
	// from it next round (spec.md §4.2 step 1: "collect marked stops from
	// round k-1").
	marked := map[StopID]TimestampSeconds{}
	for stopID := range fromStops {
		marked[stopID] = t0
	}

	// Round-0 footpath relaxation straight from the origins.
	for stopID := range fromStops {
		for _, tr := range store.transfersByStop[stopID] {
			candidate := t0 + TimestampSeconds(tr.MinTransferTimeSeconds)
			result.improve(tr.ToStopID, candidate, 0, t0, 0)
		}
	}
	for stopID, label := range result.best {
		if !fromStops[stopID] {
			marked[stopID] = label.arrival
		}
	}

	upperBound := t0 + departureWindow

	for round := 1; round <= maxTransfers && len(marked) > 0; round++ {
		windowCap := unboundedWindow
		if round == 1 {
			// Δ bounds only the very first boarding (spec.md §4.2's
			// seeding description); later rounds board the earliest
			// available trip with no upper bound.
			windowCap = upperBound
		}

		routeImproved := scanRoutes(store, result, marked, windowCap, round)
		transferImproved := relaxTransfers(store, result, routeImproved, round)

		nextMarked := make(map[StopID]TimestampSeconds, len(routeImproved)+len(transferImproved))
		for stopID := range routeImproved {
			nextMarked[stopID] = result.best[stopID].arrival
		}
		for stopID := range transferImproved {
			nextMarked[stopID] = result.best[stopID].arrival
		}
		marked = nextMarked
	}

	return result, nil
}

// scanRoutes is spec.md §4.2 step 2. It processes every route-pattern
// touched by a marked stop exactly once, carrying a "currently boarded trip"
// forward along the pattern's stop order and re-boarding whenever a marked
// stop makes an earlier trip available — the standard RAPTOR per-route scan.
func scanRoutes(store *Store, result *RaptorResult, marked map[StopID]TimestampSeconds, windowCap TimestampSeconds, round int) map[StopID]bool {
	touchedPatterns := map[*routePattern]bool{}
	for stopID := range marked {
		for _, ref := range store.patternsByStop[stopID] {
			touchedPatterns[ref.pattern] = true
		}
	}

	improved := map[StopID]bool{}
	for pattern := range touchedPatterns {
		currentTrip := -1
		currentBoardings := 0
		var currentJourneyDeparture TimestampSeconds
		boardedAtIdx := -1

		for stopIdx, stopID := range pattern.stopIDs {
			if readyTime, isMarked := marked[stopID]; isMarked {
				candidate := pattern.earliestBoardableTripIndex(stopIdx, readyTime, windowCap)
				if candidate != -1 && (currentTrip == -1 || candidate < currentTrip) {
					markedLabel := result.best[stopID]
					currentTrip = candidate
					boardedAtIdx = stopIdx
					currentBoardings = markedLabel.boardings + 1
					if markedLabel.boardings == 0 {
						currentJourneyDeparture = pattern.trips[candidate].stopTimes[stopIdx].DepartureTimeSeconds
					} else {
						currentJourneyDeparture = markedLabel.journeyDeparture
					}
				}
			}
			// Only the stops after the boarding stop can have been reached by
			// riding currentTrip — the boarding stop's own label is its
			// ready-time, which is never later than the trip's departure there
			// (that is what made it boardable) but can be later than the trip's
			// arrival there, so overwriting it here would let a dwelling
			// vehicle's earlier arrival corrupt the passenger's actual
			// ready-time. Matches the teacher's following-stops-only
			// update.
			if currentTrip == -1 || stopIdx <= boardedAtIdx {
				continue
			}
			arrival := pattern.trips[currentTrip].stopTimes[stopIdx].ArrivalTimeSeconds
			if result.improve(stopID, arrival, currentBoardings, currentJourneyDeparture, round) {
				improved[stopID] = true
			}
		}
	}
	return improved
}

// relaxTransfers is spec.md §4.2 step 3, restricted to the stops the route
// scan just improved — footpaths never chain within a round, and only
// considering route-scan-improved stops here (not transfer-improved ones)
// means a transfer can never retroactively beat an already-recorded
// route-scan label at equal arrival, which is exactly the "prefer
// route-scan witness" tie-break spec.md §4.2 asks for.
func relaxTransfers(store *Store, result *RaptorResult, routeImproved map[StopID]bool, round int) map[StopID]bool {
	improved := map[StopID]bool{}
	for stopID := range routeImproved {
		label := result.best[stopID]
		for _, tr := range store.transfersByStop[stopID] {
			candidate := label.arrival + TimestampSeconds(tr.MinTransferTimeSeconds)
			if result.improve(tr.ToStopID, candidate, label.boardings, label.journeyDeparture, round) {
				improved[tr.ToStopID] = true
			}
		}
	}
	return improved
}

// improve applies label[stop] = min(label[stop], arrival); returns whether
// it actually changed anything, and if so records/overwrites that stop's
// row for this round. A stop can be improved several times within one
// round (once per pattern or footpath that reaches it); keep=all wants the
// round's final, best label, not every intermediate one, so a second
// improvement within the same round replaces its own row in place rather
// than appending a duplicate (spec.md §4.2: "one row per (stop, round)
// Pareto-distinct label").
func (r *RaptorResult) improve(stopID StopID, arrival TimestampSeconds, boardings int, journeyDeparture TimestampSeconds, round int) bool {
	if existing, ok := r.best[stopID]; ok && existing.arrival <= arrival {
		return false
	}
	label := &stopLabel{arrival: arrival, boardings: boardings, journeyDeparture: journeyDeparture}
	r.best[stopID] = label
	row := ResultRow{
		StopID:               stopID,
		TravelTimeSeconds:    arrival - r.t0,
		JourneyDepartureTime: journeyDeparture,
		JourneyArrivalTime:   arrival,
		MinArrivalTime:       arrival,
		Transfers:            label.transfers(),
	}
	key := stopRound{stopID: stopID, round: round}
	if idx, ok := r.rowIndex[key]; ok {
		r.rows[idx] = row
	} else {
		r.rowIndex[key] = len(r.rows)
		r.rows = append(r.rows, row)
	}
	return true
}

// setOrigin seeds an origin's trivial label: present at t0, zero boardings,
// round 0.
func (r *RaptorResult) setOrigin(stopID StopID, t0 TimestampSeconds) {
	label := &stopLabel{arrival: t0, boardings: 0, journeyDeparture: t0}
	r.best[stopID] = label
	key := stopRound{stopID: stopID, round: 0}
	r.rowIndex[key] = len(r.rows)
	r.rows = append(r.rows, ResultRow{
		StopID:               stopID,
		TravelTimeSeconds:    0,
		JourneyDepartureTime: t0,
		JourneyArrivalTime:   t0,
		MinArrivalTime:       t0,
		Transfers:            0,
	})
}

func emptyResult(keep Keep) *RaptorResult {
	return &RaptorResult{keep: keep, fromStops: map[StopID]bool{}, best: map[StopID]*stopLabel{}, rows: []ResultRow{}, rowIndex: map[stopRound]int{}}
}

// earliestDeparture is spec.md §4.2's t0: the minimum departure_time among
// stop_times at any origin stop — counting only rows that are not the last
// stop_time of their trip. A trip's final stop_time always carries a
// departure_time field (GTFS rows are symmetric), but there is no next stop
// to ride onward to, so it is not a usable departure; a stop that only ever
// shows up as someone's terminus has no departure at all, even though it has
// stop_times rows (spec.md §8's "existing but arrival-only stop").
func earliestDeparture(stopTimes []StopTime, fromStops map[StopID]bool) (TimestampSeconds, bool) {
	lastSeqByTrip := map[TripID]int{}
	for _, st := range stopTimes {
		if st.StopSequence > lastSeqByTrip[st.TripID] {
			lastSeqByTrip[st.TripID] = st.StopSequence
		}
	}

	best := TimestampSeconds(0)
	found := false
	for _, st := range stopTimes {
		if !fromStops[st.StopID] || st.StopSequence == lastSeqByTrip[st.TripID] {
			continue
		}
		if !found || st.DepartureTimeSeconds < best {
			best = st.DepartureTimeSeconds
			found = true
		}
	}
	return best, found
}

// earliestArrival is earliestDeparture's arrival-side counterpart, used only
// for the spec.md §8 arrival-only-origin boundary: a stop that is visited but
// never boarded from still has a well-defined earliest arrival.
func earliestArrival(stopTimes []StopTime, fromStops map[StopID]bool) (TimestampSeconds, bool) {
	best := TimestampSeconds(0)
	found := false
	for _, st := range stopTimes {
		if !fromStops[st.StopID] {
			continue
		}
		if !found || st.ArrivalTimeSeconds < best {
			best = st.ArrivalTimeSeconds
			found = true
		}
	}
	return best, found
}

// arrivalOnlyResult seeds a trivial single-row-per-origin result (spec.md
// §8: "an existing but arrival-only stop... returns a single row with
// travel_time=0") for origins that were visited but never have an outgoing
// departure to board from. Origins among fromStops that have no record at
// all in stopTimes get no row, the same as the fully-unrecognized case.
func arrivalOnlyResult(keep Keep, fromStops map[StopID]bool, stopTimes []StopTime, t0 TimestampSeconds) *RaptorResult {
	result := emptyResult(keep)
	result.t0 = t0
	result.fromStops = fromStops
	seeded := map[StopID]bool{}
	for _, st := range stopTimes {
		if fromStops[st.StopID] && !seeded[st.StopID] {
			seeded[st.StopID] = true
			result.setOrigin(st.StopID, t0)
		}
	}
	return result
}

func stopIDList(set map[StopID]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
