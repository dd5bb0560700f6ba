package raptor

import (
	"os"

	"github.com/gocarina/gocsv"
)

// MarshalResultRowsString renders result rows as a CSV string, using the
// same struct csv tags gocsv reads in tidbyt-gtfs's parse package.
func MarshalResultRowsString(rows []ResultRow) (string, error) {
	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", wrapError(ErrInternal, err, "marshaling result rows to csv")
	}
	return out, nil
}

// WriteResultRowsFile writes result rows as CSV to path.
func WriteResultRowsFile(path string, rows []ResultRow) error {
	f, err := os.Create(path)
	if err != nil {
		return wrapError(ErrInternal, err, "creating csv output file %q", path)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return wrapError(ErrInternal, err, "marshaling result rows to %q", path)
	}
	return nil
}

// MarshalTravelTimesRowsString renders travel_times rows as a CSV string.
func MarshalTravelTimesRowsString(rows []TravelTimesRow) (string, error) {
	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", wrapError(ErrInternal, err, "marshaling travel_times rows to csv")
	}
	return out, nil
}

// WriteTravelTimesRowsFile writes travel_times rows as CSV to path.
func WriteTravelTimesRowsFile(path string, rows []TravelTimesRow) error {
	f, err := os.Create(path)
	if err != nil {
		return wrapError(ErrInternal, err, "creating csv output file %q", path)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return wrapError(ErrInternal, err, "marshaling travel_times rows to %q", path)
	}
	return nil
}
