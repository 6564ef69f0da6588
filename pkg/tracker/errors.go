package tracker

import (
	"fmt"

	"github.com/buswatch/buswatch/pkg/transit"
)

// NotFoundError means a route, stop or journey identifier did not
// resolve. Surfaced to callers as a client error, never retried.
type NotFoundError struct {
	Kind       string
	Identifier string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Identifier)
}

// InvalidTransitionError means the requested event is not legal from the
// journey's current status.
type InvalidTransitionError struct {
	Event   Event
	Current transit.JourneyStatus
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot apply %s from status %s", e.Event, e.Current)
}

// UnsupportedEventError means the event name is outside the known set.
type UnsupportedEventError struct {
	Event string
}

func (e UnsupportedEventError) Error() string {
	return fmt.Sprintf("unsupported event type: %s", e.Event)
}
