package tracker

import (
	"context"
	"time"

	"github.com/buswatch/buswatch/pkg/metrics"
	"github.com/buswatch/buswatch/pkg/prediction"
	"github.com/buswatch/buswatch/pkg/transit"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// JourneyStore is the persistence collaborator for journeys. Get returns
// (nil, nil) when the identifier does not resolve.
type JourneyStore interface {
	Get(ctx context.Context, identifier string) (*transit.Journey, error)
	Insert(ctx context.Context, journey *transit.Journey) error
	Update(ctx context.Context, journey *transit.Journey) error
}

// RouteStore resolves route identifiers. Get returns (nil, nil) on a miss.
type RouteStore interface {
	Get(ctx context.Context, identifier string) (*transit.Route, error)
}

// StopStore resolves stop identifiers. Get returns (nil, nil) on a miss.
type StopStore interface {
	Get(ctx context.Context, identifier string) (*transit.Stop, error)
}

// Predictor computes an arrival estimate at journey creation.
type Predictor interface {
	Predict(ctx context.Context, routeIdentifier string, start time.Time) (time.Time, prediction.Status, error)
}

// StartRequest carries the boundary fields for creating a journey.
type StartRequest struct {
	RouteRef         string
	StartStopRef     string
	EndStopRef       string
	PlannedStartTime *time.Time
}

// Tracker owns the journey lifecycle: it creates journeys and validates
// and applies status transitions. All durable state lives in the
// injected stores, which are the sole arbiter of consistency; concurrent
// transitions for the same journey race at the storage layer.
type Tracker struct {
	Journeys JourneyStore
	Routes   RouteStore
	Stops    StopStore

	Predictor Predictor

	// Now is swappable for tests. Defaults to time.Now.
	Now func() time.Time
}

func (t *Tracker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// Start creates a journey in STARTED after resolving the route and stops
// and freezing a single prediction. StartTime stays unset: only the
// intent to travel has been logged, the bus has not arrived yet.
func (t *Tracker) Start(ctx context.Context, request StartRequest) (*transit.Journey, error) {
	route, err := t.Routes.Get(ctx, request.RouteRef)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, NotFoundError{Kind: "route", Identifier: request.RouteRef}
	}

	startStop, err := t.Stops.Get(ctx, request.StartStopRef)
	if err != nil {
		return nil, err
	}
	if startStop == nil {
		return nil, NotFoundError{Kind: "stop", Identifier: request.StartStopRef}
	}

	if request.EndStopRef != "" {
		endStop, err := t.Stops.Get(ctx, request.EndStopRef)
		if err != nil {
			return nil, err
		}
		if endStop == nil {
			return nil, NotFoundError{Kind: "stop", Identifier: request.EndStopRef}
		}
	}

	now := t.now().UTC()

	plannedStart := now
	if request.PlannedStartTime != nil {
		plannedStart = *request.PlannedStartTime
	}

	officialStart := ""
	officialEnd := ""
	if route.Timetable != nil {
		officialStart = route.Timetable.StartTime
		officialEnd = route.Timetable.EndTime
	}

	predictedArrival, predictedStatus, err := t.Predictor.Predict(ctx, request.RouteRef, now)
	if err != nil {
		return nil, err
	}

	journey := &transit.Journey{
		PrimaryIdentifier: uuid.New().String(),

		RouteRef:     request.RouteRef,
		StartStopRef: request.StartStopRef,
		EndStopRef:   request.EndStopRef,

		PlannedStartTime: &plannedStart,

		Status:           transit.JourneyStatusStarted,
		CreationDateTime: now,

		PredictedArrival: predictedArrival,
		PredictedStatus:  string(predictedStatus),

		OfficialStartTime: officialStart,
		OfficialEndTime:   officialEnd,

		DataSource: transit.DataSourceUser,
	}

	if err := t.Journeys.Insert(ctx, journey); err != nil {
		return nil, err
	}

	log.Info().
		Str("journey", journey.PrimaryIdentifier).
		Str("route", journey.RouteRef).
		Str("predictedstatus", journey.PredictedStatus).
		Msg("Started journey")

	return journey, nil
}

// Transition applies a lifecycle event to the journey. Reaching the stop
// stamps the end time, which is what materialises the duration sample
// consumed by future predictions. ARRIVED and DELAYED stamp nothing.
func (t *Tracker) Transition(ctx context.Context, journeyIdentifier string, event Event) (*transit.Journey, error) {
	journey, err := t.Journeys.Get(ctx, journeyIdentifier)
	if err != nil {
		return nil, err
	}
	if journey == nil {
		return nil, NotFoundError{Kind: "journey", Identifier: journeyIdentifier}
	}

	if !allowedSources[event][journey.Status] {
		return nil, InvalidTransitionError{Event: event, Current: journey.Status}
	}

	journey.Status = targetStatus[event]

	if event == EventStopReached {
		endTime := t.now().UTC()
		journey.EndTime = &endTime
	}

	if err := t.Journeys.Update(ctx, journey); err != nil {
		return nil, err
	}

	metrics.JourneyTransitions.WithLabelValues(string(event)).Inc()
	log.Info().
		Str("journey", journey.PrimaryIdentifier).
		Str("event", string(event)).
		Str("status", string(journey.Status)).
		Msg("Journey transition")

	return journey, nil
}
