package timetable

import (
	"regexp"
	"strings"
)

var fieldSeparator = regexp.MustCompile(`\s+`)

// ScheduledTrip is one timetable entry parsed from the schedule file.
// Trips are recomputed on every parse and never persisted.
type ScheduledTrip struct {
	TripRef       string
	RouteCode     string
	OperatingDays string
	StartTime     string
	EndTime       string
}

const (
	recordTypeRouteHeader = "JQ"
	recordTypeTrip        = "QP"

	// QP record token positions
	tripRefField       = 1
	operatingDaysField = 3
	startTimeField     = 4
	endTimeField       = 5
	minTripFields      = 6
)

// TripsForRoute parses the schedule file content and returns every trip
// belonging to the target route, in file order. This is a tolerant
// parser: malformed records are skipped, never an error. A file with no
// matching trips simply yields nothing.
func TripsForRoute(content string, targetRoute string) []ScheduledTrip {
	var trips []ScheduledTrip

	currentRoute := ""

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if len(line) < 2 {
			continue
		}

		switch line[0:2] {
		case recordTypeRouteHeader:
			// A header establishes the route context for all trip
			// records until the next header
			fields := fieldSeparator.Split(line, -1)
			if len(fields) > 1 {
				currentRoute = fields[1]
			} else {
				currentRoute = ""
			}
		case recordTypeTrip:
			if currentRoute != targetRoute {
				continue
			}

			fields := fieldSeparator.Split(line, -1)
			if len(fields) < minTripFields {
				continue
			}

			startTime, startOK := formatClockTime(fields[startTimeField])
			endTime, endOK := formatClockTime(fields[endTimeField])
			if !startOK || !endOK {
				continue
			}

			trips = append(trips, ScheduledTrip{
				TripRef:       fields[tripRefField],
				RouteCode:     currentRoute,
				OperatingDays: fields[operatingDaysField],
				StartTime:     startTime,
				EndTime:       endTime,
			})
		}
	}

	return trips
}

// formatClockTime converts a 4 digit HHMM token into "HH:MM".
func formatClockTime(raw string) (string, bool) {
	if len(raw) != 4 {
		return "", false
	}

	for _, character := range raw {
		if character < '0' || character > '9' {
			return "", false
		}
	}

	return raw[0:2] + ":" + raw[2:4], true
}
