package tracker

import "github.com/buswatch/buswatch/pkg/transit"

// Event is a rider submitted journey lifecycle event.
type Event string

const (
	EventArrived     Event = "ARRIVED"
	EventDelayed     Event = "DELAYED"
	EventStopReached Event = "STOP_REACHED"
)

// allowedSources is the legal transition graph: the statuses a journey
// may be in when each event arrives. Absent combinations are invalid,
// which also rules out re-entering the current state and any move out of
// the terminal STOP_REACHED.
var allowedSources = map[Event]map[transit.JourneyStatus]bool{
	EventArrived: {
		transit.JourneyStatusStarted: true,
		transit.JourneyStatusDelayed: true,
	},
	EventDelayed: {
		transit.JourneyStatusStarted: true,
	},
	EventStopReached: {
		transit.JourneyStatusStarted: true,
		transit.JourneyStatusDelayed: true,
	},
}

// targetStatus maps each event to the status it moves a journey into.
var targetStatus = map[Event]transit.JourneyStatus{
	EventArrived:     transit.JourneyStatusArrived,
	EventDelayed:     transit.JourneyStatusDelayed,
	EventStopReached: transit.JourneyStatusStopReached,
}

// ParseEvent validates a textual event name from the transport boundary.
func ParseEvent(name string) (Event, error) {
	event := Event(name)

	if _, known := targetStatus[event]; !known {
		return "", UnsupportedEventError{Event: name}
	}

	return event, nil
}
