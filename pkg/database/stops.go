package database

import (
	"context"
	"errors"

	"github.com/buswatch/buswatch/pkg/transit"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StopStore persists stops in the "stops" collection.
type StopStore struct{}

func (s StopStore) Get(ctx context.Context, identifier string) (*transit.Stop, error) {
	stopsCollection := GetCollection("stops")

	var stop *transit.Stop
	err := stopsCollection.FindOne(ctx, bson.M{"primaryidentifier": identifier}).Decode(&stop)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return stop, nil
}

func (s StopStore) Upsert(ctx context.Context, stop *transit.Stop) error {
	stopsCollection := GetCollection("stops")

	bsonRep, err := bson.Marshal(stop)
	if err != nil {
		return err
	}

	_, err = stopsCollection.ReplaceOne(ctx,
		bson.M{"primaryidentifier": stop.PrimaryIdentifier},
		bsonRep,
		options.Replace().SetUpsert(true))
	return err
}
