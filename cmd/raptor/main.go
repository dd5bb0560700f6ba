package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	raptor "github.com/weijia2013/tidytransit-go"
)

var rootCmd = &cobra.Command{
	Use:          "raptor",
	Short:        "RAPTOR transit routing over a GTFS feed",
	Long:         "Computes earliest-arrival and travel-time tables from a GTFS zip feed using a round-based RAPTOR search.",
	SilenceUsage: true,
}

var (
	fromStop      string
	serviceDate   string
	windowSeconds int
	maxDeparture  string
	keepMode      string
	csvOutputPath string
)

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(travelTimesCmd)
}

func main() {
	// Store construction panics with a *raptor.Error{Kind: ErrInternal} on
	// an invariant violation (spec.md §7): that is a bug in the feed data
	// reaching the store, not something the CLI's caller can react to
	// through cobra's normal error return, so it is converted into a clean
	// process exit here instead of a stack dump.
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(*raptor.Error); ok {
				fmt.Fprintf(os.Stderr, "raptor: %v\n", rerr)
				os.Exit(1)
			}
			panic(r)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
