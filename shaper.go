package raptor

import "sort"

// ShapeEarliest projects a Run result into the "earliest" table (spec.md
// §4.2/§4.3): one row per stop with a label, including origins at
// travel_time=0 — every worked scenario in spec.md §8 lists the origin
// stop(s) explicitly in its expected output, so "excluding origins
// themselves" in the §8 invariant describes them as trivially reachable,
// not as omitted from the result.
func ShapeEarliest(r *RaptorResult) []ResultRow {
	rows := make([]ResultRow, 0, len(r.best))
	for stopID, label := range r.best {
		rows = append(rows, ResultRow{
			StopID:               stopID,
			TravelTimeSeconds:    label.arrival - r.t0,
			JourneyDepartureTime: label.journeyDeparture,
			JourneyArrivalTime:   label.arrival,
			MinArrivalTime:       label.arrival,
			Transfers:            label.transfers(),
		})
	}
	sortRowsByStopID(rows)
	return rows
}

// ShapeShortest is the "shortest" projection. spec.md §9 describes all three
// keep modes as "views over the same label matrix... implement once, project
// three ways" — earliest and shortest carry the identical six columns, so
// this delegates directly, which also makes the §8 invariant
// (shortest.travel_time == earliest.min_arrival_time - t0) hold trivially.
func ShapeShortest(r *RaptorResult) []ResultRow {
	return ShapeEarliest(r)
}

// ShapeAll returns every Pareto-distinct (stop, round) label recorded during
// the search (spec.md §4.2's "all" mode), including the origin rows.
func ShapeAll(r *RaptorResult) []ResultRow {
	rows := make([]ResultRow, len(r.rows))
	copy(rows, r.rows)
	sortRowsByStopID(rows)
	return rows
}

func sortRowsByStopID(rows []ResultRow) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].StopID < rows[j].StopID })
}
