package timetable

import (
	"strconv"
	"strings"
	"time"

	"github.com/buswatch/buswatch/pkg/transit"
)

// NearestTrip returns the trip whose scheduled start is closest to the
// target wall clock time, comparing minutes since midnight and ignoring
// the date entirely. Ties go to the first trip in file order. Returns nil
// when the trip list is empty.
func NearestTrip(trips []ScheduledTrip, target time.Time) *transit.TimetableSnapshot {
	targetMinutes := target.Hour()*60 + target.Minute()

	var closest *ScheduledTrip
	closestDiff := 0

	for i := range trips {
		tripMinutes, ok := clockTimeMinutes(trips[i].StartTime)
		if !ok {
			continue
		}

		diff := tripMinutes - targetMinutes
		if diff < 0 {
			diff = -diff
		}

		if closest == nil || diff < closestDiff {
			closest = &trips[i]
			closestDiff = diff
		}
	}

	if closest == nil {
		return nil
	}

	return &transit.TimetableSnapshot{
		TripRef:   closest.TripRef,
		StartTime: closest.StartTime,
		EndTime:   closest.EndTime,
	}
}

func clockTimeMinutes(clockTime string) (int, bool) {
	parts := strings.SplitN(clockTime, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}

	return hours*60 + minutes, true
}
