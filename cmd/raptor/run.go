package main

import (
	"fmt"

	"github.com/spf13/cobra"

	raptor "github.com/weijia2013/tidytransit-go"
	"github.com/weijia2013/tidytransit-go/internal/gtfsfeed"
)

var runCmd = &cobra.Command{
	Use:   "run <gtfs.zip>",
	Short: "Run a RAPTOR search from a stop and print (or write) the result table",
	Args:  cobra.ExactArgs(1),
	RunE:  runRaptor,
}

func init() {
	runCmd.Flags().StringVar(&fromStop, "from", "", "origin stop_name (required)")
	runCmd.Flags().StringVar(&serviceDate, "date", "", "service date, YYYYMMDD (required; calendar resolution is out of scope here — every trip in the feed is treated as active)")
	runCmd.Flags().IntVar(&windowSeconds, "window", int(raptor.DefaultDepartureWindowSeconds), "departure time window in seconds")
	runCmd.Flags().StringVar(&maxDeparture, "max-departure", "", "latest departure time admitted by the stop_times filter, HH:MM:SS (--window still sets the departure range)")
	runCmd.Flags().StringVar(&keepMode, "keep", string(raptor.KeepEarliest), "one of earliest, shortest, all")
	runCmd.Flags().StringVar(&csvOutputPath, "csv", "", "write the result table to this CSV file instead of stdout")
	runCmd.MarkFlagRequired("from")
	runCmd.MarkFlagRequired("date")
}

func runRaptor(cmd *cobra.Command, args []string) error {
	feedPath := args[0]

	tables, err := gtfsfeed.Load(feedPath, nil)
	if err != nil {
		return fmt.Errorf("loading feed: %w", err)
	}

	prepared, err := prepareTables(tables, serviceDate, maxDeparture)
	if err != nil {
		return err
	}

	fromStopIDs := stopIDsNamed(prepared, fromStop)
	if len(fromStopIDs) == 0 {
		return fmt.Errorf("unknown --from stop_name %q", fromStop)
	}

	keep := raptor.Keep(keepMode)
	result, err := raptor.Run(raptor.RaptorInput{
		StopTimes:                 prepared.StopTimes,
		Transfers:                 prepared.Transfers,
		FromStopIDs:               fromStopIDs,
		DepartureTimeRangeSeconds: raptor.TimestampSeconds(windowSeconds),
		Keep:                      keep,
	})
	if err != nil {
		return err
	}

	var rows []raptor.ResultRow
	switch keep {
	case raptor.KeepEarliest:
		rows = raptor.ShapeEarliest(result)
	case raptor.KeepShortest:
		rows = raptor.ShapeShortest(result)
	case raptor.KeepAll:
		rows = raptor.ShapeAll(result)
	}

	if csvOutputPath != "" {
		return raptor.WriteResultRowsFile(csvOutputPath, rows)
	}

	out, err := raptor.MarshalResultRowsString(rows)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// prepareTables derives the active-trip set and a coarse [0, t_max) window
// and runs Filter. This window is deliberately wide — --window governs Δ,
// the round-1 boarding range passed to raptor.Run, not which stop_times
// Filter admits in the first place. Calendar/exception resolution is out of
// scope for this engine (spec.md §1); this CLI stands in the simplest
// possible resolver — every trip present in the feed counts as active —
// rather than guess at an unverified gtfsparser calendar API.
func prepareTables(tables raptor.TimetableTables, date string, maxDeparture string) (*raptor.FilteredStopTimes, error) {
	activeTripIDs := map[raptor.TripID]bool{}
	for _, st := range tables.StopTimes {
		activeTripIDs[st.TripID] = true
	}

	maxSeconds := raptor.TimestampSeconds(1 << 30)
	if maxDeparture != "" {
		parsed, err := raptor.ParseClockTime(maxDeparture)
		if err != nil {
			return nil, fmt.Errorf("parsing --max-departure: %w", err)
		}
		maxSeconds = parsed
	}

	return raptor.Filter(tables, raptor.CalendarDate{Date: date, ActiveTripIDs: activeTripIDs}, raptor.TimeWindow{
		MinSeconds: 0,
		MaxSeconds: maxSeconds,
	})
}

// stopIDsNamed resolves a stop_name to every stop_id sharing it — a station
// with several platforms under one name boards from all of them, the same
// resolution raptor.TravelTimes does internally for its own --from.
func stopIDsNamed(prepared *raptor.FilteredStopTimes, name string) []raptor.StopID {
	var ids []raptor.StopID
	for _, s := range prepared.Stops {
		if s.StopName == name {
			ids = append(ids, s.StopID)
		}
	}
	return ids
}
