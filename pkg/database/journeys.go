package database

import (
	"context"
	"errors"
	"time"

	"github.com/buswatch/buswatch/pkg/transit"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// JourneyStore persists journeys in the "journeys" collection. It is the
// storage collaborator for pkg/tracker and, through JourneyDurations, the
// sample source for pkg/prediction.
type JourneyStore struct{}

func (s JourneyStore) Get(ctx context.Context, identifier string) (*transit.Journey, error) {
	journeysCollection := GetCollection("journeys")

	var journey *transit.Journey
	err := journeysCollection.FindOne(ctx, bson.M{"primaryidentifier": identifier}).Decode(&journey)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return journey, nil
}

func (s JourneyStore) Insert(ctx context.Context, journey *transit.Journey) error {
	journeysCollection := GetCollection("journeys")

	_, err := journeysCollection.InsertOne(ctx, journey)
	return err
}

func (s JourneyStore) Update(ctx context.Context, journey *transit.Journey) error {
	journeysCollection := GetCollection("journeys")

	bsonRep, err := bson.Marshal(journey)
	if err != nil {
		return err
	}

	_, err = journeysCollection.ReplaceOne(ctx, bson.M{"primaryidentifier": journey.PrimaryIdentifier}, bsonRep)
	return err
}

// JourneyDurations returns the elapsed seconds of the most recently started
// completed journeys for a route and data source, newest first, capped at
// limit. Only the two timestamps are loaded, not the full documents.
func (s JourneyStore) JourneyDurations(ctx context.Context, routeIdentifier string, source transit.DataSource, limit int64) ([]float64, error) {
	journeysCollection := GetCollection("journeys")

	cursor, err := journeysCollection.Find(ctx, bson.M{
		"routeref":   routeIdentifier,
		"status":     transit.JourneyStatusStopReached,
		"datasource": source,
		"starttime":  bson.M{"$ne": nil},
		"endtime":    bson.M{"$ne": nil},
	}, options.Find().
		SetSort(bson.D{{Key: "starttime", Value: -1}}).
		SetLimit(limit).
		SetProjection(bson.M{"starttime": 1, "endtime": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var durations []float64
	for cursor.Next(ctx) {
		var record struct {
			StartTime *time.Time
			EndTime   *time.Time
		}
		if err := cursor.Decode(&record); err != nil {
			return nil, err
		}

		if record.StartTime == nil || record.EndTime == nil {
			continue
		}

		elapsed := record.EndTime.Sub(*record.StartTime).Seconds()
		if elapsed <= 0 {
			continue
		}

		durations = append(durations, elapsed)
	}

	return durations, cursor.Err()
}
