package raptor

import "sort"

// TravelTimesOptions are the optional knobs on the travel_times wrapper
// (spec.md §4.5).
type TravelTimesOptions struct {
	// DepartureTimeRangeSeconds defaults to DefaultDepartureWindowSeconds
	// when left at zero.
	DepartureTimeRangeSeconds TimestampSeconds
	// MaxDepartureTime, if set, overrides DepartureTimeRangeSeconds:
	// Δ = *MaxDepartureTime - t0_origin.
	MaxDepartureTime *TimestampSeconds
	// ReturnDT controls the result container shape in the source this was
	// distilled from ("plain" vs "tibble-like"); content is identical
	// either way, so it is carried through as a flag on TravelTimesResult
	// rather than changing what TravelTimes actually computes.
	ReturnDT bool
}

// TravelTimesResult is the travel_times wrapper's output.
type TravelTimesResult struct {
	Rows     []TravelTimesRow
	ReturnDT bool
}

// TravelTimes is the name-based wrapper (spec.md §4.5): resolve a stop name
// to the stop_ids sharing it, run RAPTOR with keep=shortest, and aggregate
// the result by destination stop_name, keeping the minimum travel_time per
// name.
func TravelTimes(prepared *FilteredStopTimes, fromStopName string, opts TravelTimesOptions) (*TravelTimesResult, error) {
	if prepared == nil {
		return nil, invalidArgument("travel_times requires a filtered stop_times view carrying transfers and stops metadata")
	}

	fromStopIDs := []StopID{}
	for _, s := range prepared.Stops {
		if s.StopName == fromStopName {
			fromStopIDs = append(fromStopIDs, s.StopID)
		}
	}
	if len(fromStopIDs) == 0 {
		return nil, invalidArgument("unknown from_stop_name %q", fromStopName)
	}
	fromStopSet := toStopSet(fromStopIDs)

	window := opts.DepartureTimeRangeSeconds
	if opts.MaxDepartureTime != nil {
		if opts.DepartureTimeRangeSeconds > 0 {
			warnBothWindowAndMaxDepartureSupplied()
		}
		t0, ok := earliestDeparture(prepared.StopTimes, fromStopSet)
		if !ok {
			warnNoDeparturesInWindow(fromStopIDs, TimeWindow{})
			return &TravelTimesResult{Rows: []TravelTimesRow{}, ReturnDT: opts.ReturnDT}, nil
		}
		delta := *opts.MaxDepartureTime - t0
		if delta <= 0 {
			return nil, invalidArgument("max_departure_time must be after the origin's earliest departure (t0=%d)", t0)
		}
		window = delta
	}

	result, err := Run(RaptorInput{
		StopTimes:                 prepared.StopTimes,
		Transfers:                 prepared.Transfers,
		FromStopIDs:               fromStopIDs,
		DepartureTimeRangeSeconds: window,
		Keep:                      KeepShortest,
	})
	if err != nil {
		return nil, err
	}

	stopNameByID := map[StopID]string{}
	for _, s := range prepared.Stops {
		stopNameByID[s.StopID] = s.StopName
	}

	best := map[string]TravelTimesRow{}
	for _, row := range ShapeShortest(result) {
		name, ok := stopNameByID[row.StopID]
		if !ok {
			continue
		}
		existing, seen := best[name]
		if !seen || row.TravelTimeSeconds < existing.TravelTimeSeconds {
			best[name] = TravelTimesRow{
				StopName:             name,
				TravelTimeSeconds:    row.TravelTimeSeconds,
				JourneyDepartureTime: row.JourneyDepartureTime,
				JourneyArrivalTime:   row.JourneyArrivalTime,
				MinArrivalTime:       row.MinArrivalTime,
				Transfers:            row.Transfers,
			}
		}
	}

	out := make([]TravelTimesRow, 0, len(best))
	for _, row := range best {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StopName < out[j].StopName })

	return &TravelTimesResult{Rows: out, ReturnDT: opts.ReturnDT}, nil
}

func toStopSet(ids []StopID) map[StopID]bool {
	m := make(map[StopID]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
