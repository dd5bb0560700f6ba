package raptor

// Filter implements spec.md §4.1: given the full timetable, a resolved
// service date and an absolute [t_min, t_max) window, produce the filtered
// stop_times view RAPTOR and travel_times operate on, bundled with the
// transfers and stops tables as metadata.
func Filter(tables TimetableTables, date CalendarDate, window TimeWindow) (*FilteredStopTimes, error) {
	if len(date.ActiveTripIDs) == 0 {
		return nil, invalidArgument("no active service on date %q", date.Date)
	}
	if window.MaxSeconds <= window.MinSeconds {
		return nil, invalidArgument("time window [%d, %d) is empty", window.MinSeconds, window.MaxSeconds)
	}

	filtered := make([]StopTime, 0, len(tables.StopTimes))
	for _, st := range tables.StopTimes {
		if !date.ActiveTripIDs[st.TripID] {
			continue
		}
		if st.DepartureTimeSeconds < window.MinSeconds || st.DepartureTimeSeconds >= window.MaxSeconds {
			continue
		}
		filtered = append(filtered, st)
	}
	if len(filtered) == 0 {
		return nil, invalidArgument("no stop_times active on %q fall within window [%d, %d)", date.Date, window.MinSeconds, window.MaxSeconds)
	}

	return &FilteredStopTimes{
		StopTimes: filtered,
		Transfers: tables.Transfers,
		Stops:     tables.Stops,
	}, nil
}
