package transit

import "time"

// Route is a named path, identified by a code plus direction key
// (eg. "94B-O" for the outbound 94B).
type Route struct {
	PrimaryIdentifier string `bson:",omitempty"`

	Name      string `bson:",omitempty"`
	Direction string `bson:",omitempty"`

	Stops []RouteStop `bson:",omitempty"`

	// Timetable is the cached closest official trip for this route,
	// refreshed by the data importer. Nil when the schedule file had
	// nothing for this route.
	Timetable            *TimetableSnapshot `bson:",omitempty"`
	TimetableLastUpdated time.Time          `bson:",omitempty"`
}

// RouteStop links a route to one of its stops in sequence order.
type RouteStop struct {
	StopRef  string `bson:",omitempty"`
	Sequence int
}

// TimetableSnapshot is the flattened result of matching a route against
// the official schedule file.
type TimetableSnapshot struct {
	TripRef   string `bson:",omitempty"`
	StartTime string `bson:",omitempty"`
	EndTime   string `bson:",omitempty"`
}
