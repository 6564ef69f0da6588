package dataimporter

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/buswatch/buswatch/pkg/database"
	"github.com/buswatch/buswatch/pkg/timetable"
	"github.com/buswatch/buswatch/pkg/transit"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SeedOfficialSamples materialises the schedule file into completed
// journeys tagged "official", giving the prediction engine a baseline
// duration population before enough rider submitted journeys exist.
func SeedOfficialSamples(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	routeStore := database.RouteStore{}
	journeyStore := database.JourneyStore{}

	routes, err := routeStore.List(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	seeded := 0
	for _, route := range routes {
		routeCode := strings.SplitN(route.PrimaryIdentifier, "-", 2)[0]

		for _, trip := range timetable.TripsForRoute(string(content), routeCode) {
			startTime, startOK := clockTimeOn(midnight, trip.StartTime)
			endTime, endOK := clockTimeOn(midnight, trip.EndTime)
			if !startOK || !endOK {
				continue
			}

			// Trips running over midnight end on the next day
			if !endTime.After(startTime) {
				endTime = endTime.AddDate(0, 0, 1)
			}

			if endTime.Sub(startTime) <= time.Minute {
				continue
			}

			startStopRef := ""
			if len(route.Stops) > 0 {
				startStopRef = route.Stops[0].StopRef
			}

			journey := &transit.Journey{
				PrimaryIdentifier: uuid.New().String(),
				RouteRef:          route.PrimaryIdentifier,
				StartStopRef:      startStopRef,
				StartTime:         &startTime,
				EndTime:           &endTime,
				Status:            transit.JourneyStatusStopReached,
				CreationDateTime:  now,
				DataSource:        transit.DataSourceOfficial,
			}

			if err := journeyStore.Insert(ctx, journey); err != nil {
				return err
			}

			seeded += 1
		}
	}

	log.Info().Int("journeys", seeded).Msg("Seeded official duration samples")

	return nil
}

func clockTimeOn(day time.Time, clockTime string) (time.Time, bool) {
	parsed, err := time.Parse("15:04", clockTime)
	if err != nil {
		return time.Time{}, false
	}

	return day.Add(time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute), true
}
