package raptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// networkWithOneTransfer builds a small, hand-verifiable network:
//
//	pattern "line1": A --(t1: dep100/arr300 via B@200)--> C
//	                 A --(t2: dep1000/arr1200 via B@1100)--> C  (later duplicate trip, same pattern)
//	footpath: C -> D, 50s
//	pattern "line2": D --(t3: dep400)--> E (arr500)
//	                 D --(t4: dep1300)--> E (arr1400)
//
// Earliest path from A: board t1 (dep100), arrive C@300, walk to D (ready 350),
// board t3 (dep400, the earliest trip at-or-after 350), arrive E@500.
// That is 2 boardings, so 1 reported transfer.
func networkWithOneTransfer() ([]StopTime, []Transfer) {
	stopTimes := []StopTime{
		{TripID: "t1", StopID: "A", StopSequence: 0, ArrivalTimeSeconds: 100, DepartureTimeSeconds: 100},
		{TripID: "t1", StopID: "B", StopSequence: 1, ArrivalTimeSeconds: 200, DepartureTimeSeconds: 200},
		{TripID: "t1", StopID: "C", StopSequence: 2, ArrivalTimeSeconds: 300, DepartureTimeSeconds: 300},

		{TripID: "t2", StopID: "A", StopSequence: 0, ArrivalTimeSeconds: 1000, DepartureTimeSeconds: 1000},
		{TripID: "t2", StopID: "B", StopSequence: 1, ArrivalTimeSeconds: 1100, DepartureTimeSeconds: 1100},
		{TripID: "t2", StopID: "C", StopSequence: 2, ArrivalTimeSeconds: 1200, DepartureTimeSeconds: 1200},

		{TripID: "t3", StopID: "D", StopSequence: 0, ArrivalTimeSeconds: 400, DepartureTimeSeconds: 400},
		{TripID: "t3", StopID: "E", StopSequence: 1, ArrivalTimeSeconds: 500, DepartureTimeSeconds: 500},

		{TripID: "t4", StopID: "D", StopSequence: 0, ArrivalTimeSeconds: 1300, DepartureTimeSeconds: 1300},
		{TripID: "t4", StopID: "E", StopSequence: 1, ArrivalTimeSeconds: 1400, DepartureTimeSeconds: 1400},
	}
	transfers := []Transfer{{FromStopID: "C", ToStopID: "D", MinTransferTimeSeconds: 50}}
	return stopTimes, transfers
}

func TestRunReachesEveryStopAlongTheWitnessPath(t *testing.T) {
	stopTimes, transfers := networkWithOneTransfer()
	result, err := Run(RaptorInput{
		StopTimes:   stopTimes,
		Transfers:   transfers,
		FromStopIDs: []StopID{"A"},
		Keep:        KeepEarliest,
	})
	require.NoError(t, err)

	rows := ShapeEarliest(result)
	byStop := map[StopID]ResultRow{}
	for _, r := range rows {
		byStop[r.StopID] = r
	}

	require.Contains(t, byStop, StopID("A"))
	assert.Equal(t, 0, byStop["A"].TravelTimeSeconds)
	assert.Equal(t, 0, byStop["A"].Transfers)

	require.Contains(t, byStop, StopID("C"))
	assert.Equal(t, 300, byStop["C"].MinArrivalTime)
	assert.Equal(t, 0, byStop["C"].Transfers) // reached on the first boarding

	require.Contains(t, byStop, StopID("E"))
	assert.Equal(t, 500, byStop["E"].MinArrivalTime)
	assert.Equal(t, 1, byStop["E"].Transfers) // C->D footpath, then a second boarding
	assert.Equal(t, 100, byStop["E"].JourneyDepartureTime)
}

func TestRunMaxTransfersCutsOffLaterRounds(t *testing.T) {
	stopTimes, transfers := networkWithOneTransfer()
	result, err := Run(RaptorInput{
		StopTimes:    stopTimes,
		Transfers:    transfers,
		FromStopIDs:  []StopID{"A"},
		Keep:         KeepEarliest,
		MaxTransfers: 1,
	})
	require.NoError(t, err)

	rows := ShapeEarliest(result)
	var sawE bool
	for _, r := range rows {
		if r.StopID == "E" {
			sawE = true
		}
	}
	// Reaching E needs the round-1 route scan (boards t1, reaching C, then
	// relaxes C->D within that same round) and the round-2 route scan
	// (boards t3 from D); with MaxTransfers=1 the search stops after round 1,
	// so D is reached but E never is.
	assert.False(t, sawE)

	var sawD bool
	for _, r := range rows {
		if r.StopID == "D" {
			sawD = true
		}
	}
	assert.True(t, sawD)
}

func TestRunMultiOriginSeedsFromTheEarliestDeparture(t *testing.T) {
	stopTimes, transfers := networkWithOneTransfer()
	result, err := Run(RaptorInput{
		StopTimes:   stopTimes,
		Transfers:   transfers,
		FromStopIDs: []StopID{"A", "D"},
		Keep:        KeepEarliest,
	})
	require.NoError(t, err)

	// t0 = min(100 at A, 400 at D) = 100.
	rows := ShapeEarliest(result)
	for _, r := range rows {
		if r.StopID == "D" {
			assert.Equal(t, 0, r.TravelTimeSeconds) // D is itself an origin
		}
	}
}

func TestRunDepartureTimeRangeOnlyBoundsRoundOneBoarding(t *testing.T) {
	stopTimes, transfers := networkWithOneTransfer()
	// Add a third origin, F, on its own pattern departing far later than A.
	// t0 = min(100 at A, 5000 at F) = 100; with Δ=50 the window [100,150)
	// covers A's own trip but not F's, so F never boards in round 1.
	stopTimes = append(stopTimes,
		StopTime{TripID: "t5", StopID: "F", StopSequence: 0, ArrivalTimeSeconds: 5000, DepartureTimeSeconds: 5000},
		StopTime{TripID: "t5", StopID: "B", StopSequence: 1, ArrivalTimeSeconds: 5100, DepartureTimeSeconds: 5100},
	)

	result, err := Run(RaptorInput{
		StopTimes:                 stopTimes,
		Transfers:                 transfers,
		FromStopIDs:               []StopID{"A", "F"},
		Keep:                      KeepEarliest,
		DepartureTimeRangeSeconds: 50,
	})
	require.NoError(t, err)

	rows := ShapeEarliest(result)
	byStop := map[StopID]ResultRow{}
	for _, r := range rows {
		byStop[r.StopID] = r
	}

	// B is reached via A's t1 (dep=100, within the window), not via F's t5.
	require.Contains(t, byStop, StopID("B"))
	assert.Equal(t, 200, byStop["B"].MinArrivalTime)

	// The round-2 boarding of t3 at D departs at 400, past t0+Δ=150; E is
	// still reached because Δ does not bound boardings after round 1.
	require.Contains(t, byStop, StopID("E"))
	assert.Equal(t, 500, byStop["E"].MinArrivalTime)
}

func TestRunRejectsInvalidKeep(t *testing.T) {
	stopTimes, transfers := networkWithOneTransfer()
	_, err := Run(RaptorInput{
		StopTimes:   stopTimes,
		Transfers:   transfers,
		FromStopIDs: []StopID{"A"},
		Keep:        "fastest",
	})
	require.Error(t, err)
	assert.Equal(t, ErrInvalidArgument, err.(*Error).Kind)
}

func TestRunRejectsNegativeDepartureTimeRange(t *testing.T) {
	stopTimes, transfers := networkWithOneTransfer()
	_, err := Run(RaptorInput{
		StopTimes:                 stopTimes,
		Transfers:                 transfers,
		FromStopIDs:               []StopID{"A"},
		Keep:                      KeepEarliest,
		DepartureTimeRangeSeconds: -1,
	})
	require.Error(t, err)
	assert.Equal(t, ErrInvalidArgument, err.(*Error).Kind)
}

func TestRunReturnsEmptyResultForUnknownOrigin(t *testing.T) {
	stopTimes, transfers := networkWithOneTransfer()
	result, err := Run(RaptorInput{
		StopTimes:   stopTimes,
		Transfers:   transfers,
		FromStopIDs: []StopID{"nowhere"},
		Keep:        KeepEarliest,
	})
	require.NoError(t, err)
	assert.Empty(t, ShapeEarliest(result))
}

func TestRunReturnsEmptyResultWhenFromStopIDsAreAllEmpty(t *testing.T) {
	stopTimes, transfers := networkWithOneTransfer()
	result, err := Run(RaptorInput{
		StopTimes:   stopTimes,
		Transfers:   transfers,
		FromStopIDs: []StopID{""},
		Keep:        KeepEarliest,
	})
	require.NoError(t, err)
	assert.Empty(t, ShapeEarliest(result))
}

// TestRunDwellingTripDoesNotCorruptTheBoardingStopsOwnLabel reproduces a
// dwell scenario: a vehicle arrives at a stop before the passenger's
// ready-time there but departs at/after it. The trip's arrival at its own
// boarding stop must never overwrite that stop's label — only stops after
// the boarding index are reachable by riding the trip.
func TestRunDwellingTripDoesNotCorruptTheBoardingStopsOwnLabel(t *testing.T) {
	stopTimes := []StopTime{
		// Origin O's only real departure, so t0=0.
		{TripID: "tO", StopID: "O", StopSequence: 0, ArrivalTimeSeconds: 0, DepartureTimeSeconds: 0},
		{TripID: "tO", StopID: "Z", StopSequence: 1, ArrivalTimeSeconds: 5, DepartureTimeSeconds: 5},
		// Pattern X->Y: the vehicle is sitting at X from 0 to 30 (dwell).
		{TripID: "tXY", StopID: "X", StopSequence: 0, ArrivalTimeSeconds: 0, DepartureTimeSeconds: 30},
		{TripID: "tXY", StopID: "Y", StopSequence: 1, ArrivalTimeSeconds: 40, DepartureTimeSeconds: 40},
	}
	transfers := []Transfer{{FromStopID: "O", ToStopID: "X", MinTransferTimeSeconds: 15}}

	result, err := Run(RaptorInput{
		StopTimes:   stopTimes,
		Transfers:   transfers,
		FromStopIDs: []StopID{"O"},
		Keep:        KeepEarliest,
	})
	require.NoError(t, err)

	rows := ShapeEarliest(result)
	byStop := map[StopID]ResultRow{}
	for _, r := range rows {
		byStop[r.StopID] = r
	}

	// X is made ready at 15 by the O->X footpath (t0=0 + 15s). The X->Y
	// trip is dwelling there (arrives 0, departs 30) and is boardable, but
	// its arrival-at-X of 0 must not overwrite X's own ready-time of 15.
	require.Contains(t, byStop, StopID("X"))
	assert.Equal(t, 15, byStop["X"].MinArrivalTime)
	assert.Equal(t, 0, byStop["X"].Transfers)

	require.Contains(t, byStop, StopID("Y"))
	assert.Equal(t, 40, byStop["Y"].MinArrivalTime)
	assert.Equal(t, 0, byStop["Y"].Transfers) // O->X footpath, then a single boarding
}

// TestRunArrivalOnlyOriginReturnsASingleZeroTravelTimeRow covers spec.md
// §8's terminal-origin boundary: a stop that has stop_times rows but only
// ever as the last stop of a trip (no usable onward departure) still gets
// an origin row at travel_time=0, distinct from an origin absent from the
// timetable entirely (which gets an empty result).
func TestRunArrivalOnlyOriginReturnsASingleZeroTravelTimeRow(t *testing.T) {
	stopTimes := []StopTime{
		{TripID: "tInbound", StopID: "P", StopSequence: 0, ArrivalTimeSeconds: 0, DepartureTimeSeconds: 0},
		{TripID: "tInbound", StopID: "T", StopSequence: 1, ArrivalTimeSeconds: 100, DepartureTimeSeconds: 100},
	}

	result, err := Run(RaptorInput{
		StopTimes:   stopTimes,
		FromStopIDs: []StopID{"T"},
		Keep:        KeepEarliest,
	})
	require.NoError(t, err)

	rows := ShapeEarliest(result)
	require.Len(t, rows, 1)
	assert.Equal(t, StopID("T"), rows[0].StopID)
	assert.Equal(t, 0, rows[0].TravelTimeSeconds)
	assert.Equal(t, 100, rows[0].MinArrivalTime)
	assert.Equal(t, 0, rows[0].Transfers)
}

// TestRunKeepAllDedupesPerStopPerRound exercises spec.md §4.2's "one row
// per (stop, round) Pareto-distinct label": two different route-patterns
// improving the same stop within the same round must collapse to the
// round's single best row, not leave a dominated row behind, regardless of
// which pattern the scan visits first.
func TestRunKeepAllDedupesPerStopPerRound(t *testing.T) {
	stopTimes := []StopTime{
		{TripID: "slow1", StopID: "A", StopSequence: 0, ArrivalTimeSeconds: 10, DepartureTimeSeconds: 10},
		{TripID: "slow1", StopID: "B1", StopSequence: 1, ArrivalTimeSeconds: 50, DepartureTimeSeconds: 50},
		{TripID: "slow1", StopID: "C", StopSequence: 2, ArrivalTimeSeconds: 100, DepartureTimeSeconds: 100},

		{TripID: "fast1", StopID: "A", StopSequence: 0, ArrivalTimeSeconds: 5, DepartureTimeSeconds: 5},
		{TripID: "fast1", StopID: "B2", StopSequence: 1, ArrivalTimeSeconds: 20, DepartureTimeSeconds: 20},
		{TripID: "fast1", StopID: "C", StopSequence: 2, ArrivalTimeSeconds: 30, DepartureTimeSeconds: 30},
	}

	result, err := Run(RaptorInput{
		StopTimes:   stopTimes,
		FromStopIDs: []StopID{"A"},
		Keep:        KeepAll,
	})
	require.NoError(t, err)

	var cRows []ResultRow
	for _, r := range ShapeAll(result) {
		if r.StopID == "C" {
			cRows = append(cRows, r)
		}
	}
	require.Len(t, cRows, 1)
	assert.Equal(t, 30, cRows[0].MinArrivalTime)
	assert.Equal(t, 0, cRows[0].Transfers)
}

func TestRunReturnsEmptyResultWhenOriginHasNoDepartureInTheGivenStopTimes(t *testing.T) {
	stopTimes, transfers := networkWithOneTransfer()
	// Simulate an upstream Filter call whose window excluded every one of
	// A's departures: A never appears as a StopID in the rows Run sees.
	withoutOriginDepartures := make([]StopTime, 0, len(stopTimes))
	for _, st := range stopTimes {
		if st.StopID != "A" {
			withoutOriginDepartures = append(withoutOriginDepartures, st)
		}
	}

	result, err := Run(RaptorInput{
		StopTimes:   withoutOriginDepartures,
		Transfers:   transfers,
		FromStopIDs: []StopID{"A"},
		Keep:        KeepEarliest,
	})
	require.NoError(t, err)
	assert.Empty(t, ShapeEarliest(result))
}
