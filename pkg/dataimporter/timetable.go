package dataimporter

import (
	"context"
	"strings"
	"time"

	"github.com/buswatch/buswatch/pkg/database"
	"github.com/buswatch/buswatch/pkg/timetable"
	"github.com/rs/zerolog/log"
)

// RefreshTimetables recomputes each route's cached official timetable
// snapshot by matching the schedule file against the current time.
// Routes with nothing in the file keep their previous snapshot.
func RefreshTimetables(ctx context.Context, path string) error {
	routeStore := database.RouteStore{}

	routes, err := routeStore.List(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	refreshed := 0

	for _, route := range routes {
		// Route identifiers carry a direction suffix ("94B-O") but the
		// schedule file keys trips by the bare code
		routeCode := strings.SplitN(route.PrimaryIdentifier, "-", 2)[0]

		match := timetable.OfficialTimetable(path, routeCode, now)
		if match == nil {
			continue
		}

		route.Timetable = match
		route.TimetableLastUpdated = now

		if err := routeStore.Upsert(ctx, route); err != nil {
			return err
		}

		refreshed += 1
	}

	log.Info().Int("routes", refreshed).Msg("Refreshed timetable snapshots")

	return nil
}
