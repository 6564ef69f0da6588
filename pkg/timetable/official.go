package timetable

import (
	"os"
	"time"

	"github.com/buswatch/buswatch/pkg/transit"
)

// OfficialTimetable reads the schedule file at path and returns the
// closest scheduled trip for the route relative to the planned start
// time. A missing file, or a file with no trips for the route, returns
// nil so callers fall back to other data sources.
func OfficialTimetable(path string, routeCode string, planned time.Time) *transit.TimetableSnapshot {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	trips := TripsForRoute(string(content), routeCode)
	if len(trips) == 0 {
		return nil
	}

	return NearestTrip(trips, planned)
}
