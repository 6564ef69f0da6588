package database

import (
	"context"
	"errors"

	"github.com/buswatch/buswatch/pkg/transit"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RouteStore persists routes in the "routes" collection.
type RouteStore struct{}

func (s RouteStore) Get(ctx context.Context, identifier string) (*transit.Route, error) {
	routesCollection := GetCollection("routes")

	var route *transit.Route
	err := routesCollection.FindOne(ctx, bson.M{"primaryidentifier": identifier}).Decode(&route)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return route, nil
}

func (s RouteStore) List(ctx context.Context) ([]*transit.Route, error) {
	routesCollection := GetCollection("routes")

	cursor, err := routesCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "primaryidentifier", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var routes []*transit.Route
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, err
	}

	return routes, nil
}

func (s RouteStore) Upsert(ctx context.Context, route *transit.Route) error {
	routesCollection := GetCollection("routes")

	bsonRep, err := bson.Marshal(route)
	if err != nil {
		return err
	}

	_, err = routesCollection.ReplaceOne(ctx,
		bson.M{"primaryidentifier": route.PrimaryIdentifier},
		bsonRep,
		options.Replace().SetUpsert(true))
	return err
}
