package raptor

import (
	"sort"
	"strings"
)

// patternTrip is one trip's stop_times, aligned 1:1 with its pattern's
// stopIDs (same length, sorted by stop_sequence).
type patternTrip struct {
	tripID    TripID
	stopTimes []StopTime
}

// routePattern is spec.md §3/§9's route-pattern: the equivalence class of
// trips visiting the same ordered stop_id sequence, materialized explicitly
// at store-construction time rather than discovered implicitly per query.
// Trips are kept sorted by departure at stopIDs[0], and RAPTOR assumes no
// overtaking within a pattern (a trip departing later from one stop never
// arrives earlier at a later stop than a trip that departed before it) —
// the standard RAPTOR FIFO assumption.
type routePattern struct {
	stopIDs []StopID
	trips   []patternTrip
}

type patternRef struct {
	pattern *routePattern
	stopIdx int
}

// Store is the pre-built timetable RAPTOR searches against (spec.md §4.4):
// per-stop pattern membership, per-pattern boardable-trip binary search, and
// per-stop transfer adjacency.
type Store struct {
	patterns        []*routePattern
	patternsByStop  map[StopID][]patternRef
	transfersByStop map[StopID][]Transfer
}

// NewStore groups stop_times by trip, buckets trips into route-patterns by
// stop-sequence fingerprint, and indexes both by stop. Panics with an
// *Error{Kind: ErrInternal} if a trip's stop_times violate spec.md §3's
// monotonicity invariant — Filter does not check this invariant, so a
// violation here means the timetable data itself is malformed, which
// spec.md §7 treats as an implementation bug rather than a normal
// validation failure.
func NewStore(stopTimes []StopTime, transfers []Transfer) *Store {
	byTrip := map[TripID][]StopTime{}
	for _, st := range stopTimes {
		byTrip[st.TripID] = append(byTrip[st.TripID], st)
	}

	tripIDs := make([]TripID, 0, len(byTrip))
	for tripID := range byTrip {
		tripIDs = append(tripIDs, tripID)
	}
	sort.Strings(tripIDs) // deterministic pattern/trip order, independent of map iteration

	patternsByFingerprint := map[string]*routePattern{}
	patterns := make([]*routePattern, 0, len(tripIDs))

	for _, tripID := range tripIDs {
		sts := byTrip[tripID]
		sort.Slice(sts, func(i, j int) bool { return sts[i].StopSequence < sts[j].StopSequence })

		for i, st := range sts {
			if st.ArrivalTimeSeconds > st.DepartureTimeSeconds {
				panic(internalError("trip %s: departure before arrival at stop %s", tripID, st.StopID))
			}
			if i > 0 && st.ArrivalTimeSeconds < sts[i-1].DepartureTimeSeconds {
				panic(internalError("trip %s: non-monotone stop_sequence at stop %s", tripID, st.StopID))
			}
		}

		stopIDs := make([]StopID, len(sts))
		for i, st := range sts {
			stopIDs[i] = st.StopID
		}
		fingerprint := strings.Join(stopIDs, ">")

		pattern, ok := patternsByFingerprint[fingerprint]
		if !ok {
			pattern = &routePattern{stopIDs: stopIDs}
			patternsByFingerprint[fingerprint] = pattern
			patterns = append(patterns, pattern)
		}
		pattern.trips = append(pattern.trips, patternTrip{tripID: tripID, stopTimes: sts})
	}

	for _, pattern := range patterns {
		sort.Slice(pattern.trips, func(i, j int) bool {
			return pattern.trips[i].stopTimes[0].DepartureTimeSeconds < pattern.trips[j].stopTimes[0].DepartureTimeSeconds
		})
	}

	patternsByStop := map[StopID][]patternRef{}
	for _, pattern := range patterns {
		for stopIdx, stopID := range pattern.stopIDs {
			patternsByStop[stopID] = append(patternsByStop[stopID], patternRef{pattern: pattern, stopIdx: stopIdx})
		}
	}

	transfersByStop := map[StopID][]Transfer{}
	for _, tr := range transfers {
		transfersByStop[tr.FromStopID] = append(transfersByStop[tr.FromStopID], tr)
	}

	return &Store{patterns: patterns, patternsByStop: patternsByStop, transfersByStop: transfersByStop}
}

// earliestBoardableTripIndex binary-searches for the first trip whose
// departure at stopIdx falls in [readyTime, upperBoundExclusive). Returns -1
// if none qualifies.
func (p *routePattern) earliestBoardableTripIndex(stopIdx int, readyTime, upperBoundExclusive TimestampSeconds) int {
	n := len(p.trips)
	i := sort.Search(n, func(i int) bool {
		return p.trips[i].stopTimes[stopIdx].DepartureTimeSeconds >= readyTime
	})
	if i >= n {
		return -1
	}
	if p.trips[i].stopTimes[stopIdx].DepartureTimeSeconds >= upperBoundExclusive {
		return -1
	}
	return i
}
