package main

import (
	"fmt"

	"github.com/spf13/cobra"

	raptor "github.com/weijia2013/tidytransit-go"
	"github.com/weijia2013/tidytransit-go/internal/gtfsfeed"
)

var travelTimesCmd = &cobra.Command{
	Use:   "travel-times <gtfs.zip>",
	Short: "Print the shortest travel time from a named stop to every reached destination stop_name",
	Args:  cobra.ExactArgs(1),
	RunE:  runTravelTimes,
}

func init() {
	travelTimesCmd.Flags().StringVar(&fromStop, "from", "", "origin stop_name (required)")
	travelTimesCmd.Flags().StringVar(&serviceDate, "date", "", "service date, YYYYMMDD (required; calendar resolution is out of scope here — every trip in the feed is treated as active)")
	travelTimesCmd.Flags().IntVar(&windowSeconds, "window", int(raptor.DefaultDepartureWindowSeconds), "departure time window in seconds")
	travelTimesCmd.Flags().StringVar(&maxDeparture, "max-departure", "", "latest departure time to consider, HH:MM:SS (overrides --window)")
	travelTimesCmd.Flags().StringVar(&csvOutputPath, "csv", "", "write the result table to this CSV file instead of stdout")
	travelTimesCmd.MarkFlagRequired("from")
	travelTimesCmd.MarkFlagRequired("date")
}

func runTravelTimes(cmd *cobra.Command, args []string) error {
	feedPath := args[0]

	tables, err := gtfsfeed.Load(feedPath, nil)
	if err != nil {
		return fmt.Errorf("loading feed: %w", err)
	}

	prepared, err := prepareTables(tables, serviceDate, maxDeparture)
	if err != nil {
		return err
	}

	opts := raptor.TravelTimesOptions{
		DepartureTimeRangeSeconds: raptor.TimestampSeconds(windowSeconds),
	}
	if maxDeparture != "" {
		parsed, err := raptor.ParseClockTime(maxDeparture)
		if err != nil {
			return fmt.Errorf("parsing --max-departure: %w", err)
		}
		opts.MaxDepartureTime = &parsed
		opts.ReturnDT = true
	}

	result, err := raptor.TravelTimes(prepared, fromStop, opts)
	if err != nil {
		return err
	}

	if csvOutputPath != "" {
		return raptor.WriteTravelTimesRowsFile(csvOutputPath, result.Rows)
	}

	out, err := raptor.MarshalTravelTimesRowsString(result.Rows)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
