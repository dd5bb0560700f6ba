// Package gtfsfeed adapts github.com/patrickbr/gtfsparser into the
// raptor.TimetableTables shape. It does not resolve calendar/calendar_dates
// into an active-service-id set itself — that expansion is an external
// collaborator (spec.md §1 lists it out of scope for the routing engine);
// callers pass in the already-resolved set of service_ids running on the
// target date.
package gtfsfeed

import (
	"github.com/patrickbr/gtfsparser"

	raptor "github.com/weijia2013/tidytransit-go"
)

// Load parses a GTFS zip archive and converts it into the already-
// materialized tables raptor.Filter/raptor.Run consume.
func Load(path string, activeServiceIDs map[string]bool) (raptor.TimetableTables, error) {
	feed := gtfsparser.NewFeed()
	if err := feed.Parse(path); err != nil {
		return raptor.TimetableTables{}, err
	}
	return Convert(feed, activeServiceIDs), nil
}

// Convert walks an already-parsed feed. Split out from Load so tests (and
// callers that already hold a *gtfsparser.Feed, e.g. after validating or
// trimming it) don't need a real zip file on disk.
func Convert(feed *gtfsparser.Feed, activeServiceIDs map[string]bool) raptor.TimetableTables {
	stops := make([]raptor.Stop, 0, len(feed.Stops))
	for _, s := range feed.Stops {
		stops = append(stops, raptor.Stop{StopID: s.Id, StopName: s.Name})
	}

	stopTimes := []raptor.StopTime{}
	for _, trip := range feed.Trips {
		if activeServiceIDs != nil && !activeServiceIDs[trip.Service.Id()] {
			continue
		}
		for _, st := range trip.StopTimes {
			stopTimes = append(stopTimes, raptor.StopTime{
				TripID:               trip.Id,
				StopID:               st.Stop().Id,
				StopSequence:         st.Sequence(),
				ArrivalTimeSeconds:   st.Arrival_time().SecondsSinceMidnight(),
				DepartureTimeSeconds: st.Departure_time().SecondsSinceMidnight(),
			})
		}
	}

	return raptor.TimetableTables{
		StopTimes: stopTimes,
		Transfers: ExpandParentChildTransfers(feed),
		Stops:     stops,
	}
}

// ExpandParentChildTransfers fans a transfers.txt row between two parent
// stations out across every child-platform pair, the same way the teacher
// project's own test fixture expanded parent/child station transfers before
// handing them to the search.
func ExpandParentChildTransfers(feed *gtfsparser.Feed) []raptor.Transfer {
	childrenByParent := map[string][]string{}
	for _, stop := range feed.Stops {
		if stop.Parent_station != nil {
			childrenByParent[stop.Parent_station.Id] = append(childrenByParent[stop.Parent_station.Id], stop.Id)
		}
	}

	transfers := []raptor.Transfer{}
	for fromTo, transfer := range feed.Transfers {
		froms, fromHasChildren := childrenByParent[fromTo.From_stop.Id]
		tos, toHasChildren := childrenByParent[fromTo.To_stop.Id]
		if !fromHasChildren {
			froms = []string{fromTo.From_stop.Id}
		}
		if !toHasChildren {
			tos = []string{fromTo.To_stop.Id}
		}
		for _, from := range froms {
			for _, to := range tos {
				if from != to {
					transfers = append(transfers, raptor.Transfer{
						FromStopID:             from,
						ToStopID:               to,
						MinTransferTimeSeconds: transfer.Min_transfer_time,
					})
				}
			}
		}
	}
	return transfers
}
