package transit

import (
	"encoding/json"
	"time"
)

// JourneyStatus is the lifecycle state of a tracked journey. Transitions
// only ever move forward through the graph in pkg/tracker.
type JourneyStatus string

const (
	JourneyStatusStarted     JourneyStatus = "STARTED"
	JourneyStatusDelayed     JourneyStatus = "DELAYED"
	JourneyStatusArrived     JourneyStatus = "ARRIVED"
	JourneyStatusStopReached JourneyStatus = "STOP_REACHED"
)

// DataSource tags which population a journey's eventual duration sample
// belongs to when the prediction engine aggregates history.
type DataSource string

const (
	DataSourceUser     DataSource = "user"
	DataSourceOfficial DataSource = "official"
)

// Journey is a single rider's trip attempt, from intent-to-travel through
// to reaching their stop.
type Journey struct {
	PrimaryIdentifier string `bson:",omitempty"`

	RouteRef     string `bson:",omitempty"`
	StartStopRef string `bson:",omitempty"`
	EndStopRef   string `bson:",omitempty"`

	PlannedStartTime *time.Time `bson:",omitempty"`

	// StartTime is stamped when the bus physically arrives, not at
	// creation. EndTime is stamped only when the journey reaches its
	// terminal state.
	StartTime *time.Time `bson:",omitempty"`
	EndTime   *time.Time `bson:",omitempty"`

	Status JourneyStatus `bson:",omitempty"`

	CreationDateTime time.Time `bson:",omitempty"`

	// Predicted fields are computed exactly once, at creation, and never
	// recomputed afterwards.
	PredictedArrival time.Time `bson:",omitempty"`
	PredictedStatus  string    `bson:",omitempty"`

	// Snapshot of the closest official timetable entry at creation time.
	// Empty strings when no official data was available.
	OfficialStartTime string `bson:",omitempty"`
	OfficialEndTime   string `bson:",omitempty"`

	DataSource DataSource `bson:",omitempty"`
}

// Completed reports whether this journey carries a usable duration sample.
func (j *Journey) Completed() bool {
	return j.Status == JourneyStatusStopReached && j.StartTime != nil && j.EndTime != nil && j.EndTime.After(*j.StartTime)
}

func (j Journey) MarshalBinary() ([]byte, error) {
	return json.Marshal(j)
}
