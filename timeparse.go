package raptor

import (
	"fmt"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// ParseClockTime parses a GTFS-style "HH:MM:SS" time-of-day string into
// seconds since service-day midnight. Hours are not bounded at 24: GTFS
// represents trips that run past midnight with hours >= 24 (spec.md §3),
// so e.g. "25:30:00" is a valid 25.5-hour timestamp.
func ParseClockTime(s string) (TimestampSeconds, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, pkgerrors.Errorf("found %d parts in %q, want HH:MM:SS", len(parts), s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "invalid hour in %q", s)
	}
	if hours < 0 {
		return 0, pkgerrors.Errorf("negative hour in %q", s)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "invalid minute in %q", s)
	}
	if minutes < 0 || minutes > 59 {
		return 0, pkgerrors.Errorf("minute out of range in %q", s)
	}

	seconds, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "invalid second in %q", s)
	}
	if seconds < 0 || seconds > 59 {
		return 0, pkgerrors.Errorf("second out of range in %q", s)
	}

	return hours*3600 + minutes*60 + seconds, nil
}

// FormatClockTime is ParseClockTime's inverse, rendering seconds since
// service-day midnight as "HH:MM:SS".
func FormatClockTime(secs TimestampSeconds) string {
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	remaining := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, remaining)
}
