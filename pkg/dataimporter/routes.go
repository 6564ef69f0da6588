package dataimporter

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/buswatch/buswatch/pkg/database"
	"github.com/buswatch/buswatch/pkg/transit"
	"github.com/rs/zerolog/log"
)

// RouteDefinition is a route header plus its stop sequence as read from
// the schedule file's QDN/QO/QI/QT records.
type RouteDefinition struct {
	Identifier string
	Code       string
	Direction  string
	Name       string

	StopRefs []string
}

const minimumSequenceLength = 3

// ParseRouteDefinitions extracts route definitions from schedule file
// content. A QDN record opens a route (code, direction character,
// description); QO/QI/QT records contribute its stop sequence. Routes
// with fewer than three stops are dropped, and when the same route key
// appears more than once the longest sequence wins.
func ParseRouteDefinitions(content string) []RouteDefinition {
	definitions := map[string]RouteDefinition{}
	var order []string

	var current *RouteDefinition

	saveCurrent := func() {
		if current == nil || len(current.StopRefs) < minimumSequenceLength {
			return
		}

		existing, present := definitions[current.Identifier]
		if !present {
			order = append(order, current.Identifier)
		}
		if !present || len(current.StopRefs) > len(existing.StopRefs) {
			definitions[current.Identifier] = *current
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "QDN"):
			saveCurrent()

			fields := strings.SplitN(line, " ", 4)
			if len(fields) < 4 {
				current = nil
				continue
			}

			code := strings.TrimSpace(fields[1])
			directionCharacter := strings.TrimSpace(fields[2])

			direction := "Inbound"
			if directionCharacter == "O" {
				direction = "Outbound"
			}

			current = &RouteDefinition{
				Identifier: fmt.Sprintf("%s-%s", code, directionCharacter),
				Code:       code,
				Direction:  direction,
				Name:       fmt.Sprintf("%s %s", code, strings.TrimSpace(fields[3])),
			}
		case strings.HasPrefix(line, "QO"), strings.HasPrefix(line, "QI"), strings.HasPrefix(line, "QT"):
			if current == nil || len(line) < 14 {
				continue
			}

			stopRef := strings.TrimSpace(line[2:14])
			if len(stopRef) != 12 || !strings.HasPrefix(stopRef, metroAtcoPrefix) {
				continue
			}

			duplicate := false
			for _, existing := range current.StopRefs {
				if existing == stopRef {
					duplicate = true
					break
				}
			}
			if !duplicate {
				current.StopRefs = append(current.StopRefs, stopRef)
			}
		}
	}

	saveCurrent()

	results := make([]RouteDefinition, 0, len(order))
	for _, identifier := range order {
		results = append(results, definitions[identifier])
	}

	return results
}

// ImportRoutes upserts routes and their stop sequences from the schedule
// file, preserving any existing timetable snapshot on each route.
func ImportRoutes(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	routeStore := database.RouteStore{}

	definitions := ParseRouteDefinitions(string(content))
	for _, definition := range definitions {
		route := &transit.Route{
			PrimaryIdentifier: definition.Identifier,
			Name:              definition.Name,
			Direction:         definition.Direction,
		}

		for sequence, stopRef := range definition.StopRefs {
			route.Stops = append(route.Stops, transit.RouteStop{
				StopRef:  stopRef,
				Sequence: sequence,
			})
		}

		existing, err := routeStore.Get(ctx, definition.Identifier)
		if err != nil {
			return err
		}
		if existing != nil {
			route.Timetable = existing.Timetable
			route.TimetableLastUpdated = existing.TimetableLastUpdated
		}

		if err := routeStore.Upsert(ctx, route); err != nil {
			return err
		}
	}

	log.Info().Int("routes", len(definitions)).Msg("Imported routes")

	return nil
}
